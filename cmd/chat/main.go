package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ecommerce-support-agent/config"
	"ecommerce-support-agent/config/sqldb"
	"ecommerce-support-agent/internal/chat"
	chatUC "ecommerce-support-agent/internal/chat/usecase"
	"ecommerce-support-agent/internal/classifier"
	faqRepo "ecommerce-support-agent/internal/faq/repository/qdrant"
	"ecommerce-support-agent/internal/interaction"
	orderRepo "ecommerce-support-agent/internal/order/repository/sqldb"
	"ecommerce-support-agent/internal/session"
	"ecommerce-support-agent/pkg/huggingface"
	"ecommerce-support-agent/pkg/log"
	"ecommerce-support-agent/pkg/openai"
	pkgQdrant "ecommerce-support-agent/pkg/qdrant"
	"ecommerce-support-agent/pkg/voyage"

	"github.com/google/uuid"
)

// Interactive terminal client for the support agent. All turns share a
// single session so order references carry across the conversation.
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

	// 3. Dependencies
	db, err := sqldb.Connect(ctx, cfg.Store)
	if err != nil {
		logger.Error(ctx, "Failed to connect to order store: ", err)
		return
	}
	defer sqldb.Disconnect(db)
	orderStore := orderRepo.New(db, logger)

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

	cls, err := buildClassifier(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize classifier: ", err)
		return
	}

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

	sessions := session.New(cfg.Session.MaxSessions, cfg.Session.TTL, logger)
	emitter := interaction.NewEmitter(interaction.NewLogSink(logger), cfg.Interaction.BufferSize, logger)
	defer emitter.Close()

	chatUseCase := chatUC.New(logger, cls, orderStore, faqRepository, sessions, emitter, rephraser, chatUC.Options{
		ConfidenceFloor: cfg.Router.ConfidenceFloor,
		TieEpsilon:      cfg.Router.TieEpsilon,
		HistoryTurns:    cfg.Router.HistoryTurns,
		FAQTopK:         cfg.Router.FAQTopK,
		RephraseEnabled: cfg.Composer.RephraseEnabled,
	})

	// 4. REPL
	sessionID := uuid.NewString()
	fmt.Println("E-commerce support agent. Type a question, or /quit to exit.")
	fmt.Printf("Session: %s\n\n", sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		out, err := chatUseCase.Handle(ctx, chat.HandleInput{
			SessionID: sessionID,
			Message:   line,
		})
		if err != nil {
			fmt.Printf("error: %v\n\n", err)
			continue
		}
		fmt.Printf("agent> %s\n", out.Response)
		fmt.Printf("       [intent=%s confidence=%.2f]\n\n", out.Intent, out.Confidence)
	}

	if err := scanner.Err(); err != nil {
		logger.Error(ctx, "Reading input: ", err)
	}
	fmt.Println("Bye.")
}

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
