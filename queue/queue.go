// Package queue provides an unbounded in-memory FIFO split into a sending
// half and a receiving half. Sends never block; receives block until an
// item arrives or the sending half is closed and the queue has drained.
package queue

import (
	"errors"
	"sync"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

var (
	ErrSenderClosed   = errors.New("queue sender closed")
	ErrReceiverClosed = errors.New("queue receiver closed")
	ErrSenderGone     = errors.New("queue sender gone")
	ErrReceiverGone   = errors.New("queue receiver gone")
)

// item boxes a value so nil interface values survive the untyped list.
type item[T any] struct {
	v T
}

type queue[T any] struct {
	sync.Mutex

	items          *singlylinkedlist.List
	ready          chan struct{}
	senderClosed   bool
	receiverClosed bool
}

// signal wakes a waiting receiver. It never blocks.
// Must be called with the lock held.
func (q *queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Sender is the writing half of a queue.
type Sender[T any] struct {
	q *queue[T]
}

// Receiver is the reading half of a queue.
type Receiver[T any] struct {
	q *queue[T]

	// serializes Recv so at most one goroutine waits on ready
	recvMu sync.Mutex
}

// New creates a queue and returns its two halves.
func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &queue[T]{
		items: singlylinkedlist.New(),
		ready: make(chan struct{}, 1),
	}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Send appends v to the queue.
func (s *Sender[T]) Send(v T) error {
	q := s.q
	q.Lock()
	defer q.Unlock()

	switch {
	case q.senderClosed:
		return ErrSenderClosed
	case q.receiverClosed:
		return ErrReceiverGone
	}

	q.items.Add(item[T]{v: v})
	q.signal()
	return nil
}

// Close marks the sending half closed. Items already queued remain
// receivable.
func (s *Sender[T]) Close() error {
	q := s.q
	q.Lock()
	defer q.Unlock()

	if q.senderClosed {
		return nil
	}
	q.senderClosed = true
	q.signal()
	return nil
}

// Recv removes and returns the oldest item, blocking while the queue is
// empty and the sender is still open.
func (r *Receiver[T]) Recv() (T, error) {
	r.recvMu.Lock()
	defer r.recvMu.Unlock()

	for {
		v, done, err := r.tryRecv()
		if done {
			return v, err
		}
		<-r.q.ready
	}
}

// tryRecv reports done=false when the caller has to wait for a signal.
func (r *Receiver[T]) tryRecv() (v T, done bool, err error) {
	q := r.q
	q.Lock()
	defer q.Unlock()

	if q.receiverClosed {
		return v, true, ErrReceiverClosed
	}
	if head, found := q.items.Get(0); found {
		q.items.Remove(0)
		return head.(item[T]).v, true, nil
	}
	if q.senderClosed {
		return v, true, ErrSenderGone
	}
	return v, false, nil
}

// Len returns the number of queued items.
func (r *Receiver[T]) Len() int {
	q := r.q
	q.Lock()
	defer q.Unlock()
	return q.items.Size()
}

// Close marks the receiving half closed and discards queued items.
// Subsequent sends fail with ErrReceiverGone.
func (r *Receiver[T]) Close() error {
	q := r.q
	q.Lock()
	defer q.Unlock()

	if q.receiverClosed {
		return nil
	}
	q.receiverClosed = true
	q.items.Clear()
	q.signal()
	return nil
}
