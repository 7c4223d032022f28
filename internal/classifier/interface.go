package classifier

import "context"

// Classifier maps an utterance plus recent conversation history to an intent
// with a confidence score. Backends are selected by configuration; callers
// never branch on which one is active.
//
// A transport failure or timeout is returned as an error; the caller is
// expected to degrade to (unknown, 0) rather than fail the turn.
type Classifier interface {
	Classify(ctx context.Context, text string, history []string) (Result, error)
}
