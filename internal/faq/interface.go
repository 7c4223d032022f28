package faq

import (
	"context"

	"ecommerce-support-agent/internal/model"
)

// Repository is the semantic search boundary over the FAQ corpus.
type Repository interface {
	// Search returns up to topK entries ordered by descending similarity,
	// ties broken by corpus insertion order. Entries below the similarity
	// floor are dropped. An empty result is not an error.
	Search(ctx context.Context, query string, topK int) ([]Match, error)

	// Index embeds and upserts the given entries. Re-indexing the same
	// question overwrites its previous point.
	Index(ctx context.Context, entries []model.FAQEntry) error

	// EnsureCollection creates the backing collection when missing.
	EnsureCollection(ctx context.Context) error
}
