package queue

import (
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	tx, rx := New[int]()
	for i := 0; i < 100; i++ {
		if err := tx.Send(i); err != nil {
			t.Fatal(err)
		}
	}
	if rx.Len() != 100 {
		t.Fatal("expecting 100 queued items, got", rx.Len())
	}
	for i := 0; i < 100; i++ {
		v, err := rx.Recv()
		if err != nil {
			t.Fatal(err)
		}
		if v != i {
			t.Fatalf("expecting %d, got %d", i, v)
		}
	}
}

func TestQueue_NilInterfaceValue(t *testing.T) {
	tx, rx := New[error]()
	if err := tx.Send(nil); err != nil {
		t.Fatal(err)
	}
	v, err := rx.Recv()
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatal("expecting nil value, got", v)
	}
}

func TestQueue_RecvBlocksUntilSend(t *testing.T) {
	tx, rx := New[string]()
	result := make(chan string)
	go func() {
		v, err := rx.Recv()
		if err != nil {
			t.Error(err)
		}
		result <- v
	}()

	select {
	case <-result:
		t.Fatal("Recv returned before anything was sent")
	case <-time.After(10 * time.Millisecond):
	}

	if err := tx.Send("hello"); err != nil {
		t.Fatal(err)
	}
	select {
	case v := <-result:
		if v != "hello" {
			t.Fatal("expecting hello, got", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Waited too long ...")
	}
}

func TestQueue_SenderCloseDrains(t *testing.T) {
	tx, rx := New[int]()
	_ = tx.Send(1)
	_ = tx.Send(2)
	if err := tx.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tx.Send(3); err != ErrSenderClosed {
		t.Fatal("expecting ErrSenderClosed, got", err)
	}

	for _, want := range []int{1, 2} {
		v, err := rx.Recv()
		if err != nil {
			t.Fatal(err)
		}
		if v != want {
			t.Fatalf("expecting %d, got %d", want, v)
		}
	}
	if _, err := rx.Recv(); err != ErrSenderGone {
		t.Fatal("expecting ErrSenderGone, got", err)
	}
}

func TestQueue_SenderCloseWakesRecv(t *testing.T) {
	tx, rx := New[int]()
	errs := make(chan error)
	go func() {
		_, err := rx.Recv()
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	_ = tx.Close()

	select {
	case err := <-errs:
		if err != ErrSenderGone {
			t.Fatal("expecting ErrSenderGone, got", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv was not released by sender Close")
	}
}

func TestQueue_ReceiverClose(t *testing.T) {
	tx, rx := New[int]()
	_ = tx.Send(1)
	if err := rx.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rx.Close(); err != nil {
		t.Fatal("second Close should be a no-op, got", err)
	}
	if rx.Len() != 0 {
		t.Fatal("expecting queued items to be discarded")
	}
	if err := tx.Send(2); err != ErrReceiverGone {
		t.Fatal("expecting ErrReceiverGone, got", err)
	}
	if _, err := rx.Recv(); err != ErrReceiverClosed {
		t.Fatal("expecting ErrReceiverClosed, got", err)
	}
}

func TestQueue_ReceiverCloseWakesRecv(t *testing.T) {
	_, rx := New[int]()
	errs := make(chan error)
	go func() {
		_, err := rx.Recv()
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	_ = rx.Close()

	select {
	case err := <-errs:
		if err != ErrReceiverClosed {
			t.Fatal("expecting ErrReceiverClosed, got", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv was not released by receiver Close")
	}
}

func TestQueue_ConcurrentReceivers(t *testing.T) {
	const n = 1000
	tx, rx := New[int]()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]int)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := rx.Recv()
				if err != nil {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < n; i++ {
		if err := tx.Send(i); err != nil {
			t.Fatal(err)
		}
	}
	_ = tx.Close()
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expecting %d distinct items, got %d", n, len(seen))
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("item %d delivered %d times", v, count)
		}
	}
}
