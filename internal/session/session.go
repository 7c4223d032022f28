package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"ecommerce-support-agent/internal/model"
	pkgLog "ecommerce-support-agent/pkg/log"
)

const (
	DefaultMaxSessions = 10000
	DefaultTTL         = 30 * time.Minute
)

// Store keeps per-session conversation state with TTL-based eviction.
// Turns within one session must be processed sequentially; the per-session
// mutex handed out by Lock enforces that even when a client misbehaves and
// sends overlapping requests.
type Store struct {
	mu     sync.Mutex
	states *expirable.LRU[string, *model.ConversationState]
	locks  *expirable.LRU[string, *sync.Mutex]
	l      pkgLog.Logger
}

// New creates a session store. maxSessions and ttl fall back to defaults
// when non-positive.
func New(maxSessions int, ttl time.Duration, l pkgLog.Logger) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		states: expirable.NewLRU[string, *model.ConversationState](maxSessions, nil, ttl),
		locks:  expirable.NewLRU[string, *sync.Mutex](maxSessions, nil, ttl),
		l:      l,
	}
}

// Get returns the state for sessionID, creating a fresh one on miss.
// An empty sessionID starts a new session with a generated id.
func (s *Store) Get(ctx context.Context, sessionID string) *model.ConversationState {
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.l.Debugf(ctx, "session store: new session %s", sessionID)
	}
	if state, ok := s.states.Get(sessionID); ok {
		return state
	}
	state := &model.ConversationState{SessionID: sessionID}
	s.states.Add(sessionID, state)
	return state
}

// Put stores the updated state after a turn.
func (s *Store) Put(ctx context.Context, state *model.ConversationState) {
	if state == nil || state.SessionID == "" {
		return
	}
	s.states.Add(state.SessionID, state)
}

// Lock returns the mutex serializing turns for one session.
func (s *Store) Lock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mu, ok := s.locks.Get(sessionID); ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.locks.Add(sessionID, mu)
	return mu
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.states.Len()
}
