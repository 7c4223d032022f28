package qdrant

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"ecommerce-support-agent/internal/faq"
	"ecommerce-support-agent/internal/model"
	pkgLog "ecommerce-support-agent/pkg/log"
	pkgQdrant "ecommerce-support-agent/pkg/qdrant"
	"ecommerce-support-agent/pkg/voyage"
)

const (
	// DefaultScoreFloor drops matches too dissimilar to be useful; tuned
	// against cosine similarity of voyage-3 vectors.
	DefaultScoreFloor = 0.30

	// VectorSize matches the embedding model output dimension.
	VectorSize = 1024
)

type implRepository struct {
	client         *pkgQdrant.Client
	embedder       voyage.IVoyage
	collectionName string
	scoreFloor     float64
	l              pkgLog.Logger
}

// New creates a Qdrant-backed FAQ repository.
func New(client *pkgQdrant.Client, embedder voyage.IVoyage, collectionName string, scoreFloor float64, l pkgLog.Logger) faq.Repository {
	if scoreFloor <= 0 {
		scoreFloor = DefaultScoreFloor
	}
	return &implRepository{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		scoreFloor:     scoreFloor,
		l:              l,
	}
}

// Search embeds the query and ranks FAQ entries by vector similarity.
func (r *implRepository) Search(ctx context.Context, query string, topK int) ([]faq.Match, error) {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		r.l.Errorf(ctx, "faq repository: failed to embed query: %v", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	resp, err := r.client.SearchPoints(ctx, r.collectionName, pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       topK,
		WithPayload: true,
	})
	if err != nil {
		r.l.Errorf(ctx, "faq repository: search failed: %v", err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]faq.Match, 0, len(resp.Result))
	for _, scored := range resp.Result {
		if scored.Score < r.scoreFloor {
			continue
		}
		entry, ok := entryFromPayload(scored.Payload)
		if !ok {
			r.l.Errorf(ctx, "faq repository: malformed payload for point %v: %+v", scored.ID, scored.Payload)
			continue
		}
		matches = append(matches, faq.Match{Entry: entry, Score: scored.Score})
	}

	// Qdrant already returns descending scores; the stable sort pins down
	// equal-score ordering by corpus insertion position.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.Position < matches[j].Entry.Position
	})

	r.l.Infof(ctx, "faq repository: %d matches for query %q", len(matches), query)
	return matches, nil
}

// Index embeds all entries in one batch and upserts them.
func (r *implRepository) Index(ctx context.Context, entries []model.FAQEntry) error {
	if len(entries) == 0 {
		return nil
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Question)
	}

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		r.l.Errorf(ctx, "faq repository: failed to embed entries: %v", err)
		return fmt.Errorf("failed to embed entries: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding count mismatch: got %d for %d entries", len(vectors), len(entries))
	}

	points := make([]pkgQdrant.Point, 0, len(entries))
	for i, e := range entries {
		points = append(points, pkgQdrant.Point{
			ID:     questionToUUID(e.Question),
			Vector: vectors[i],
			Payload: map[string]interface{}{
				"question": e.Question,
				"answer":   e.Answer,
				"position": e.Position,
			},
		})
	}

	if err := r.client.UpsertPoints(ctx, r.collectionName, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		r.l.Errorf(ctx, "faq repository: failed to upsert points: %v", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	r.l.Infof(ctx, "faq repository: indexed %d entries", len(entries))
	return nil
}

// EnsureCollection creates the collection when it does not exist yet.
func (r *implRepository) EnsureCollection(ctx context.Context) error {
	return r.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: r.collectionName,
		Vectors: pkgQdrant.VectorConfig{
			Size:     VectorSize,
			Distance: "Cosine",
		},
	})
}

func entryFromPayload(payload map[string]interface{}) (model.FAQEntry, bool) {
	question, ok := payload["question"].(string)
	if !ok {
		return model.FAQEntry{}, false
	}
	answer, ok := payload["answer"].(string)
	if !ok {
		return model.FAQEntry{}, false
	}
	position := 0
	// JSON numbers decode to float64.
	if p, ok := payload["position"].(float64); ok {
		position = int(p)
	}
	return model.FAQEntry{Question: question, Answer: answer, Position: position}, true
}

// questionToUUID converts a question string to a deterministic UUID.
// Qdrant requires point IDs to be UUID or uint64, not arbitrary strings.
func questionToUUID(question string) string {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") // DNS namespace
	return uuid.NewSHA1(namespace, []byte(question)).String()
}
