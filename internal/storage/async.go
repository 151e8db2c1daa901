package storage

import (
	"errors"
	"sync"

	"github.com/vovakirdan/astrarun/internal/core"
	"github.com/vovakirdan/astrarun/internal/telemetry"
)

// DefaultQueueSize is the number of pending writes an AsyncWriter buffers.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned when a write is dropped because the worker is behind.
	ErrQueueFull = errors.New("storage: write queue full")
	// ErrClosed is returned for writes issued after Close.
	ErrClosed = errors.New("storage: writer closed")
)

// Backend is the synchronous store wrapped by AsyncWriter.
type Backend interface {
	ReadHighScore(keys []string) (int, error)
	WriteHighScore(keys []string, value int) error
	RecordRun(run core.RunSummary) error
}

type job struct {
	op  string
	run func() error
}

// AsyncWriter moves writes off the game loop onto a single worker goroutine.
// Reads go straight to the backend. Writes are applied in submission order.
type AsyncWriter struct {
	backend Backend
	jobs    chan job
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewAsyncWriter starts the worker. queueSize <= 0 uses DefaultQueueSize.
func NewAsyncWriter(backend Backend, queueSize int) *AsyncWriter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	w := &AsyncWriter{
		backend: backend,
		jobs:    make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *AsyncWriter) loop() {
	defer close(w.done)
	for j := range w.jobs {
		w.apply(j)
	}
}

func (w *AsyncWriter) apply(j job) {
	defer telemetry.Recover("storage-writer")
	if err := j.run(); err != nil {
		telemetry.Report(err, telemetry.Fields("component", "storage", "op", j.op))
	}
}

func (w *AsyncWriter) enqueue(j job) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.jobs <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// ReadHighScore reads synchronously from the backend.
func (w *AsyncWriter) ReadHighScore(keys []string) (int, error) {
	return w.backend.ReadHighScore(keys)
}

// WriteHighScore queues a high score write.
func (w *AsyncWriter) WriteHighScore(keys []string, value int) error {
	keys = append([]string(nil), keys...)
	return w.enqueue(job{op: "write_high_score", run: func() error {
		return w.backend.WriteHighScore(keys, value)
	}})
}

// RecordRun queues a run record.
func (w *AsyncWriter) RecordRun(run core.RunSummary) error {
	return w.enqueue(job{op: "record_run", run: func() error {
		return w.backend.RecordRun(run)
	}})
}

// Sync blocks until every write queued before it has been applied.
func (w *AsyncWriter) Sync() error {
	done := make(chan struct{})
	err := func() error {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed {
			return ErrClosed
		}
		w.jobs <- job{op: "sync", run: func() error {
			close(done)
			return nil
		}}
		return nil
	}()
	if err != nil {
		return err
	}
	<-done
	return nil
}

// Close stops accepting writes and waits for queued ones to finish.
func (w *AsyncWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	<-w.done
}
