package model

import "time"

// Turn roles.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn is a single utterance within a conversation.
type Turn struct {
	Role      string
	Text      string
	Timestamp time.Time
}

// ConversationState is the per-session memory threaded through the routing
// engine. The router is its sole writer; tools only ever see explicit
// parameters derived from it.
type ConversationState struct {
	SessionID   string
	Turns       []Turn
	LastOrderID string // resolves pronoun/ellipsis references like "what about the seller?"
	LastIntent  Intent
}

// AppendTurn records a turn and trims history to limit turns. limit == 0
// keeps everything.
func (s *ConversationState) AppendTurn(role, text string, limit int) {
	s.Turns = append(s.Turns, Turn{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	if limit > 0 && len(s.Turns) > limit {
		s.Turns = s.Turns[len(s.Turns)-limit:]
	}
}

// RecentUserTexts returns up to k most recent user turn texts, oldest first.
func (s *ConversationState) RecentUserTexts(k int) []string {
	if k <= 0 {
		return nil
	}
	var texts []string
	for _, t := range s.Turns {
		if t.Role == RoleUser {
			texts = append(texts, t.Text)
		}
	}
	if len(texts) > k {
		texts = texts[len(texts)-k:]
	}
	return texts
}
