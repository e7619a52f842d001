package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDisconnected is wrapped by send and receive errors when the peer
	// half of a channel no longer exists.
	ErrDisconnected = errors.New("peer disconnected")

	// ErrClosed is wrapped by send and receive errors when the endpoint
	// itself has been closed.
	ErrClosed = errors.New("endpoint closed")
)

// Sender is the outgoing side of an endpoint.
type Sender[T any] interface {
	Send(T) error
}

// Receiver is the incoming side of an endpoint.
type Receiver[T any] interface {
	Recv() (T, error)
}

// Endpoint sends values of type S and receives values of type R.
// Its sibling, created in the same pair, sends R and receives S.
type Endpoint[S, R any] interface {
	Sender[S]
	Receiver[R]
	Close() error
}

// SendError is returned by Send when a value could not be delivered.
// The value is handed back to the caller so it is never silently dropped.
type SendError[T any] struct {
	Endpoint string
	Value    T
	Err      error
}

func (e *SendError[T]) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("[%s] send failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("send failed: %v", e.Err)
}

func (e *SendError[T]) Unwrap() error {
	return e.Err
}

// RecvError is returned by Recv when no value can ever arrive.
type RecvError struct {
	Endpoint string
	Err      error
}

func (e *RecvError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("[%s] recv failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("recv failed: %v", e.Err)
}

func (e *RecvError) Unwrap() error {
	return e.Err
}
