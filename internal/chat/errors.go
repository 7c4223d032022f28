package chat

import "errors"

var (
	// ErrEmptyMessage rejects turns with no content to classify.
	ErrEmptyMessage = errors.New("message is empty")
)
