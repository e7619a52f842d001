// Package context carries values used across linkk components inside a
// standard context.Context.
package context

import (
	"context"

	"github.com/go-faces/logger"
)

type ctxKey int

const logKey ctxKey = iota

// WithLogger returns a copy of ctx that carries l.
func WithLogger(ctx context.Context, l logger.Interface) context.Context {
	return context.WithValue(ctx, logKey, l)
}

// GetLogger extracts the logger stored in ctx, or nil if there is none.
func GetLogger(ctx context.Context) logger.Interface {
	if ctx == nil {
		return nil
	}
	if l, ok := ctx.Value(logKey).(logger.Interface); ok {
		return l
	}
	return nil
}
