// Package link builds pairs of criss-crossed endpoints. Each pair is made
// of two unbounded queues: whatever the first endpoint sends, the second
// receives, and the other way around. The two endpoints may carry
// different element types.
//
//	w2os, os2w := link.New[uint32, uint64](ctx, link.WithNames("w2os", "os2w"))
//	w2os.Send(42)          // os2w.Recv() yields uint32(42)
//	os2w.Send(43)          // w2os.Recv() yields uint64(43)
package link

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/go-faces/logger"
	"github.com/google/uuid"

	"github.com/gofunky/linkk/api"
	autoctx "github.com/gofunky/linkk/api/context"
	"github.com/gofunky/linkk/queue"
	"github.com/gofunky/linkk/util"
)

const (
	defaultFirstName  = "link1"
	defaultSecondName = "link2"
)

var _ api.Endpoint[int, string] = (*Endpoint[int, string])(nil)

// Option configures a pair created by New.
type Option func(*options)

type options struct {
	first, second string
}

// WithNames sets the display names of the two endpoints. Names only show
// up in errors, String and log output.
func WithNames(first, second string) Option {
	return func(o *options) {
		if first != "" {
			o.first = first
		}
		if second != "" {
			o.second = second
		}
	}
}

// Endpoint is one side of a pair. It sends values of type S to its
// sibling and receives values of type R from it.
type Endpoint[S, R any] struct {
	name   string
	id     uuid.UUID
	tx     *queue.Sender[S]
	rx     *queue.Receiver[R]
	log    logger.Interface
	closed atomic.Bool
}

// New creates a linked pair. The first endpoint sends A and receives B,
// the second sends B and receives A. The logger, if any, is taken from ctx.
func New[A, B any](ctx context.Context, opts ...Option) (*Endpoint[A, B], *Endpoint[B, A]) {
	o := options{first: defaultFirstName, second: defaultSecondName}
	for _, opt := range opts {
		opt(&o)
	}

	log := autoctx.GetLogger(ctx)
	id := uuid.New()

	txA, rxA := queue.New[A]()
	txB, rxB := queue.New[B]()

	first := newEndpoint(o.first, id, txA, rxB, log)
	second := newEndpoint(o.second, id, txB, rxA, log)

	util.Log(log, fmt.Sprintf("link %s created: %s <-> %s", id, o.first, o.second))
	return first, second
}

func newEndpoint[S, R any](name string, id uuid.UUID, tx *queue.Sender[S], rx *queue.Receiver[R], log logger.Interface) *Endpoint[S, R] {
	e := &Endpoint[S, R]{
		name: name,
		id:   id,
		tx:   tx,
		rx:   rx,
		log:  log,
	}
	runtime.SetFinalizer(e, (*Endpoint[S, R]).finalize)
	return e
}

// Name returns the display name of the endpoint.
func (e *Endpoint[S, R]) Name() string {
	return e.name
}

// String returns the name of the endpoint together with its pair id.
func (e *Endpoint[S, R]) String() string {
	return fmt.Sprintf("%s@%s", e.name, e.id)
}

// Send delivers v to the sibling endpoint. It never blocks.
// If the sibling is gone, or e was closed, Send returns a *api.SendError
// holding v.
func (e *Endpoint[S, R]) Send(v S) error {
	err := e.tx.Send(v)
	if err == nil {
		return nil
	}
	return &api.SendError[S]{Endpoint: e.name, Value: v, Err: cause(err)}
}

// Recv blocks until the sibling sends a value and returns the oldest one.
// Once the sibling is gone and every value it sent has been received,
// Recv returns a *api.RecvError.
func (e *Endpoint[S, R]) Recv() (R, error) {
	v, err := e.rx.Recv()
	if err != nil {
		return v, &api.RecvError{Endpoint: e.name, Err: cause(err)}
	}
	return v, nil
}

// Close disconnects e from its sibling. Values e already sent stay
// receivable by the sibling; values the sibling sent but e did not
// receive are discarded. Close is idempotent.
func (e *Endpoint[S, R]) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	runtime.SetFinalizer(e, nil)
	e.shutdown()
	util.Log(e.log, fmt.Sprintf("endpoint %s closed", e))
	return nil
}

func (e *Endpoint[S, R]) finalize() {
	if e.closed.Swap(true) {
		return
	}
	e.shutdown()
	util.Log(e.log, fmt.Sprintf("endpoint %s dropped without Close", e))
}

func (e *Endpoint[S, R]) shutdown() {
	_ = e.tx.Close()
	_ = e.rx.Close()
}

// cause maps queue errors onto the shared api errors.
func cause(err error) error {
	switch err {
	case queue.ErrSenderClosed, queue.ErrReceiverClosed:
		return api.ErrClosed
	case queue.ErrSenderGone, queue.ErrReceiverGone:
		return api.ErrDisconnected
	}
	return err
}
