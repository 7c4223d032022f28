package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"ecommerce-support-agent/config"
	faqRepo "ecommerce-support-agent/internal/faq/repository/qdrant"
	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/pkg/log"
	pkgQdrant "ecommerce-support-agent/pkg/qdrant"
	"ecommerce-support-agent/pkg/voyage"
)

// Batch size per Index call. Voyage embeds a whole batch in one request,
// so this bounds request payload size.
const batchSize = 64

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/ingest-faq/main.go <path/to/faq.csv>")
		fmt.Println("CSV columns: question,answer (header row optional)")
		os.Exit(1)
	}
	csvPath := os.Args[1]

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	// Initialize clients
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}
	if cfg.Voyage.Model != "" {
		embedder = embedder.WithModel(cfg.Voyage.Model)
	}
	repo := faqRepo.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, cfg.Qdrant.ScoreFloor, logger)

	entries, err := readEntries(csvPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read FAQ file: %v", err)
	}
	logger.Infof(ctx, "Loaded %d FAQ entries from %s", len(entries), csvPath)

	if err := repo.EnsureCollection(ctx); err != nil {
		logger.Fatalf(ctx, "Failed to ensure collection %q: %v", cfg.Qdrant.CollectionName, err)
	}

	indexed := 0
	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := repo.Index(ctx, entries[start:end]); err != nil {
			logger.Fatalf(ctx, "Failed to index batch %d-%d: %v", start, end, err)
		}
		indexed = end
		logger.Infof(ctx, "Indexed %d/%d entries", indexed, len(entries))
	}

	logger.Infof(ctx, "Ingest complete! %d entries in collection %q.", indexed, cfg.Qdrant.CollectionName)
}

// readEntries parses the CSV into FAQ entries. A header row whose first
// cell is "question" is skipped; blank questions are dropped.
func readEntries(path string) ([]model.FAQEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var entries []model.FAQEntry
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++

		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 columns, got %d", row, len(record))
		}
		question := strings.TrimSpace(record[0])
		answer := strings.TrimSpace(record[1])
		if row == 1 && strings.EqualFold(question, "question") {
			continue
		}
		if question == "" {
			continue
		}

		entries = append(entries, model.FAQEntry{
			Question: question,
			Answer:   answer,
			Position: len(entries),
		})
	}

	return entries, nil
}
