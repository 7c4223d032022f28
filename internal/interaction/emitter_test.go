package interaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ecommerce-support-agent/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type collectSink struct {
	mu   sync.Mutex
	recs []Record
	err  error
}

func (s *collectSink) Write(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *collectSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func TestEmitter(t *testing.T) {
	ctx := context.Background()

	t.Run("close drains queued records", func(t *testing.T) {
		sink := &collectSink{}
		e := NewEmitter(sink, 16, &mockLogger{})
		for i := 0; i < 10; i++ {
			e.Emit(ctx, Record{
				SessionID: "sess-1",
				Intent:    model.IntentOrderStatus,
				ToolUsed:  ToolStructuredQuery,
				Timestamp: time.Now(),
			})
		}
		e.Close()
		if sink.count() != 10 {
			t.Errorf("expected 10 records after drain, got %d", sink.count())
		}
	})

	t.Run("sink failure does not propagate", func(t *testing.T) {
		sink := &collectSink{err: errors.New("sink down")}
		e := NewEmitter(sink, 4, &mockLogger{})
		e.Emit(ctx, Record{SessionID: "sess-2"})
		e.Close()
	})

	t.Run("emit after close is a no-op", func(t *testing.T) {
		sink := &collectSink{}
		e := NewEmitter(sink, 4, &mockLogger{})
		e.Close()
		e.Emit(ctx, Record{SessionID: "sess-3"})
		if sink.count() != 0 {
			t.Errorf("expected no records, got %d", sink.count())
		}
	})
}
