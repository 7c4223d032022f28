package chat

import "ecommerce-support-agent/internal/model"

// HandleInput is one user turn. An empty SessionID starts a new session.
type HandleInput struct {
	SessionID string
	Message   string
}

// HandleOutput is the agent's reply plus routing metadata.
type HandleOutput struct {
	SessionID  string
	Response   string
	Intent     model.Intent
	Confidence float64
}
