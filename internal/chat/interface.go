package chat

import "context"

// UseCase is the single entry point of the routing engine. A command-line
// loop and the HTTP delivery consume it identically.
type UseCase interface {
	// Handle processes one turn for a session: classify the message,
	// dispatch to a structured lookup or FAQ search, compose the reply and
	// update conversation state. Only a structured-store failure is
	// returned as an error; everything else degrades to a user-facing
	// response.
	Handle(ctx context.Context, input HandleInput) (HandleOutput, error)
}
