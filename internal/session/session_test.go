package session

import (
	"context"
	"testing"
	"time"
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

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("miss creates fresh state", func(t *testing.T) {
		store := New(10, time.Minute, &mockLogger{})
		state := store.Get(ctx, "sess-1")
		if state.SessionID != "sess-1" {
			t.Errorf("unexpected session id %q", state.SessionID)
		}
		if len(state.Turns) != 0 {
			t.Errorf("expected empty history")
		}
	})

	t.Run("empty id gets generated", func(t *testing.T) {
		store := New(10, time.Minute, &mockLogger{})
		state := store.Get(ctx, "")
		if state.SessionID == "" {
			t.Fatal("expected generated session id")
		}
	})

	t.Run("state survives across turns", func(t *testing.T) {
		store := New(10, time.Minute, &mockLogger{})
		state := store.Get(ctx, "sess-2")
		state.LastOrderID = "abc123"
		store.Put(ctx, state)

		again := store.Get(ctx, "sess-2")
		if again.LastOrderID != "abc123" {
			t.Errorf("expected carried last order id, got %q", again.LastOrderID)
		}
	})

	t.Run("same lock per session", func(t *testing.T) {
		store := New(10, time.Minute, &mockLogger{})
		if store.Lock("sess-3") != store.Lock("sess-3") {
			t.Error("expected identical mutex for one session")
		}
		if store.Lock("sess-3") == store.Lock("sess-4") {
			t.Error("expected distinct mutexes across sessions")
		}
	})

	t.Run("capacity bound evicts oldest", func(t *testing.T) {
		store := New(2, time.Minute, &mockLogger{})
		store.Put(ctx, store.Get(ctx, "a"))
		store.Put(ctx, store.Get(ctx, "b"))
		store.Put(ctx, store.Get(ctx, "c"))
		if store.Len() != 2 {
			t.Errorf("expected capacity bound of 2, got %d", store.Len())
		}
	})
}
