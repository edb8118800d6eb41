package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/asig/closed-loop/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := NewWorkers(
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	)
	ws.Run()

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, o.id)
}

// mockFlusher counts Flush calls and signals the first one.
type mockFlusher struct {
	mu      sync.Mutex
	count   int
	flushed chan struct{}
	once    sync.Once
}

func (m *mockFlusher) Flush() error {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
	m.once.Do(func() { close(m.flushed) })
	return nil
}

func (m *mockFlusher) flushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func TestFlushWorker_FlushesOnInterval(t *testing.T) {
	flusher := &mockFlusher{flushed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewFlushWorker(ctx, flusher, time.Millisecond, logger.Nop()).Run()

	select {
	case <-flusher.flushed:
	case <-time.After(time.Second):
		t.Fatal("expected a flush within the interval")
	}
}

func TestFlushWorker_FinalFlushOnCancel(t *testing.T) {
	flusher := &mockFlusher{flushed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	NewFlushWorker(ctx, flusher, time.Hour, logger.Nop()).Run()
	cancel()

	select {
	case <-flusher.flushed:
	case <-time.After(time.Second):
		t.Fatal("expected a final flush on cancellation")
	}

	if flusher.flushCount() != 1 {
		t.Errorf("expected exactly one flush, got %d", flusher.flushCount())
	}
}
