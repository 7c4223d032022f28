package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-support-agent/config"
	"ecommerce-support-agent/config/sqldb"
	chatDelivery "ecommerce-support-agent/internal/chat/delivery/http"
	chatUC "ecommerce-support-agent/internal/chat/usecase"
	"ecommerce-support-agent/internal/classifier"
	faqRepo "ecommerce-support-agent/internal/faq/repository/qdrant"
	"ecommerce-support-agent/internal/httpserver"
	"ecommerce-support-agent/internal/interaction"
	orderRepo "ecommerce-support-agent/internal/order/repository/sqldb"
	"ecommerce-support-agent/internal/session"
	"ecommerce-support-agent/pkg/huggingface"
	"ecommerce-support-agent/pkg/log"
	"ecommerce-support-agent/pkg/openai"
	pkgQdrant "ecommerce-support-agent/pkg/qdrant"
	"ecommerce-support-agent/pkg/voyage"
)

// @title       E-commerce Support Agent API
// @description Conversational customer support routing engine: intent classification, structured order lookups, and semantic FAQ search.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting E-commerce Support Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Order store: %s", cfg.Store.Driver)
	logger.Infof(ctx, "Classifier backend: %s", cfg.Classifier.Backend)

	// 3. Order store
	db, err := sqldb.Connect(ctx, cfg.Store)
	if err != nil {
		logger.Error(ctx, "Failed to connect to order store: ", err)
		return
	}
	defer sqldb.Disconnect(db)
	orderStore := orderRepo.New(db, logger)

	// 4. FAQ search (Qdrant + Voyage)
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Voyage API: ", err)
		return
	}
	if cfg.Voyage.Model != "" {
		embedder = embedder.WithModel(cfg.Voyage.Model)
	}
	faqRepository := faqRepo.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, cfg.Qdrant.ScoreFloor, logger)

	// 5. Intent classifier backend
	cls, err := buildClassifier(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize classifier: ", err)
		return
	}

	// 6. Optional rephraser
	var rephraser openai.IOpenAI
	if cfg.Composer.RephraseEnabled && cfg.Classifier.OpenAI.APIKey != "" {
		rephraser, err = openai.New(openai.Config{
			APIKey:  cfg.Classifier.OpenAI.APIKey,
			Model:   cfg.Classifier.OpenAI.Model,
			BaseURL: cfg.Classifier.OpenAI.BaseURL,
		})
		if err != nil {
			logger.Warnf(ctx, "Rephraser not available (optional): %v", err)
		}
	}

	// 7. Sessions and interaction log
	sessions := session.New(cfg.Session.MaxSessions, cfg.Session.TTL, logger)
	emitter := interaction.NewEmitter(interaction.NewLogSink(logger), cfg.Interaction.BufferSize, logger)
	defer emitter.Close()

	// 8. Chat use case and delivery
	chatUseCase := chatUC.New(logger, cls, orderStore, faqRepository, sessions, emitter, rephraser, chatUC.Options{
		ConfidenceFloor: cfg.Router.ConfidenceFloor,
		TieEpsilon:      cfg.Router.TieEpsilon,
		HistoryTurns:    cfg.Router.HistoryTurns,
		FAQTopK:         cfg.Router.FAQTopK,
		RephraseEnabled: cfg.Composer.RephraseEnabled,
	})
	chatHandler := chatDelivery.New(logger, chatUseCase, cfg.Chat.RateLimitPerMin)

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "HTTP server stopped with error: ", err)
	}
}

// buildClassifier wires the configured classification backend. The rest of
// the engine only ever sees the classifier.Classifier contract.
func buildClassifier(cfg *config.Config, logger log.Logger) (classifier.Classifier, error) {
	switch cfg.Classifier.Backend {
	case "openai":
		client, err := openai.New(openai.Config{
			APIKey:  cfg.Classifier.OpenAI.APIKey,
			Model:   cfg.Classifier.OpenAI.Model,
			BaseURL: cfg.Classifier.OpenAI.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return classifier.NewOpenAI(client, cfg.Classifier.Timeout, logger), nil
	case "huggingface":
		client := huggingface.New(cfg.Classifier.HuggingFace.APIToken)
		if cfg.Classifier.HuggingFace.Model != "" {
			client = client.WithModel(cfg.Classifier.HuggingFace.Model)
		}
		if cfg.Classifier.HuggingFace.BaseURL != "" {
			client = client.WithBaseURL(cfg.Classifier.HuggingFace.BaseURL)
		}
		return classifier.NewHuggingFace(client, cfg.Classifier.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Classifier.Backend)
	}
}
