package huggingface

import "context"

// IHuggingFace defines the interface for the HF Inference API zero-shot client.
// Implementations are safe for concurrent use.
type IHuggingFace interface {
	Classify(ctx context.Context, text string, candidateLabels []string) (*ClassifyResponse, error)
}
