package event

import (
	"errors"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()

	if _, err := q.TryPop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty on new queue, got %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := q.Push(i); err != nil {
			t.Fatalf("Push(%d) failed: %v", i, err)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued items, got %d", q.Len())
	}

	for want := 1; want <= 3; want++ {
		got, err := q.TryPop()
		if err != nil {
			t.Fatalf("TryPop failed: %v", err)
		}
		if got != want {
			t.Fatalf("TryPop = %d, want %d", got, want)
		}
	}
}

func TestQueueCloseDrainsBeforeDisconnect(t *testing.T) {
	q := NewQueue[string]()
	_ = q.Push("last")
	q.Close()
	q.Close()

	if err := q.Push("late"); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected Push after Close to fail, got %v", err)
	}

	got, err := q.TryPop()
	if err != nil || got != "last" {
		t.Fatalf("expected queued item before disconnect, got %q, %v", got, err)
	}
	if _, err := q.TryPop(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected after drain, got %v", err)
	}
}

func TestQueueConcurrentProducersLoseNothing(t *testing.T) {
	const producers = 8
	const perProducer = 500

	q := NewQueue[int]()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = q.Push(base*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	seen := make(map[int]bool, producers*perProducer)
	lastByProducer := make(map[int]int)
	for {
		v, err := q.TryPop()
		if errors.Is(err, ErrEmpty) {
			break
		}
		if err != nil {
			t.Fatalf("TryPop failed: %v", err)
		}
		if seen[v] {
			t.Fatalf("value %d delivered twice", v)
		}
		seen[v] = true

		producer := v / perProducer
		if last, ok := lastByProducer[producer]; ok && v < last {
			t.Fatalf("producer %d values out of order: %d after %d", producer, v, last)
		}
		lastByProducer[producer] = v
	}

	if len(seen) != producers*perProducer {
		t.Fatalf("expected %d values, got %d", producers*perProducer, len(seen))
	}
}
