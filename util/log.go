package util

import "github.com/go-faces/logger"

// Log prints msgs to l. A nil logger discards them.
func Log(l logger.Interface, msgs ...interface{}) {
	if l == nil {
		return
	}
	l.Print(msgs...)
}
