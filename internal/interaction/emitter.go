package interaction

import (
	"context"
	"sync"

	pkgLog "ecommerce-support-agent/pkg/log"
)

const DefaultBufferSize = 256

// Emitter is the fire-and-forget side channel for interaction records.
// Emit never blocks the caller: records are queued to a bounded channel and
// written by one background goroutine; when the queue is full the record is
// dropped and counted.
type Emitter struct {
	ch      chan Record
	sink    Sink
	l       pkgLog.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewEmitter starts the background writer goroutine.
func NewEmitter(sink Sink, bufferSize int, l pkgLog.Logger) *Emitter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	e := &Emitter{
		ch:   make(chan Record, bufferSize),
		sink: sink,
		l:    l,
	}
	e.wg.Add(1)
	go e.run()
	return e
}

func (e *Emitter) run() {
	defer e.wg.Done()
	ctx := context.Background()
	for rec := range e.ch {
		if err := e.sink.Write(ctx, rec); err != nil {
			// Best effort only. A failing sink must never fail a turn.
			e.l.Warnf(ctx, "interaction emitter: sink write failed: %v", err)
		}
	}
}

// Emit queues a record without blocking. Records emitted after Close, or
// when the buffer is full, are dropped.
func (e *Emitter) Emit(ctx context.Context, rec Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- rec:
	default:
		e.dropped++
		e.l.Warnf(ctx, "interaction emitter: buffer full, dropped record (total dropped: %d)", e.dropped)
	}
}

// Dropped reports how many records were discarded due to backpressure.
func (e *Emitter) Dropped() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropped
}

// Close drains the queue and stops the background writer.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.ch)
	e.mu.Unlock()
	e.wg.Wait()
}
