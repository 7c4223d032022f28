package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Store       StoreConfig
	Qdrant      QdrantConfig
	Voyage      VoyageConfig
	Classifier  ClassifierConfig
	Router      RouterConfig
	Composer    ComposerConfig
	Session     SessionConfig
	Interaction InteractionConfig
	Chat        ChatConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// StoreConfig selects the read-only order database.
type StoreConfig struct {
	Driver string // "sqlite3" or "mysql"
	DSN    string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
	ScoreFloor     float64
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

// ClassifierConfig selects and tunes the intent classification backend.
type ClassifierConfig struct {
	Backend string // "openai" or "huggingface"
	Timeout time.Duration

	OpenAI      OpenAIConfig
	HuggingFace HuggingFaceConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type HuggingFaceConfig struct {
	APIToken string
	Model    string
	BaseURL  string
}

// RouterConfig tunes the dispatch policy.
type RouterConfig struct {
	ConfidenceFloor float64
	TieEpsilon      float64
	HistoryTurns    int
	FAQTopK         int
}

type ComposerConfig struct {
	RephraseEnabled bool
}

type SessionConfig struct {
	MaxSessions int
	TTL         time.Duration
}

type InteractionConfig struct {
	BufferSize int
}

type ChatConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Order store
	cfg.Store.Driver = viper.GetString("store.driver")
	cfg.Store.DSN = viper.GetString("store.dsn")
	if dsn := viper.GetString("store_dsn"); dsn != "" {
		cfg.Store.DSN = dsn
	}

	// Qdrant
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	cfg.Qdrant.ScoreFloor = viper.GetFloat64("qdrant.score_floor")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Voyage AI
	cfg.Voyage.APIKey = expandEnvVar(viper.GetString("voyage.api_key"))
	cfg.Voyage.Model = viper.GetString("voyage.model")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// Classifier backend
	cfg.Classifier.Backend = viper.GetString("classifier.backend")
	cfg.Classifier.Timeout = viper.GetDuration("classifier.timeout")
	cfg.Classifier.OpenAI.APIKey = expandEnvVar(viper.GetString("classifier.openai.api_key"))
	cfg.Classifier.OpenAI.Model = viper.GetString("classifier.openai.model")
	cfg.Classifier.OpenAI.BaseURL = viper.GetString("classifier.openai.base_url")
	cfg.Classifier.HuggingFace.APIToken = expandEnvVar(viper.GetString("classifier.huggingface.api_token"))
	cfg.Classifier.HuggingFace.Model = viper.GetString("classifier.huggingface.model")
	cfg.Classifier.HuggingFace.BaseURL = viper.GetString("classifier.huggingface.base_url")
	if openaiKey := viper.GetString("openai_api_key"); openaiKey != "" {
		cfg.Classifier.OpenAI.APIKey = openaiKey
	}
	if hfToken := viper.GetString("huggingface_api_token"); hfToken != "" {
		cfg.Classifier.HuggingFace.APIToken = hfToken
	}

	switch cfg.Classifier.Backend {
	case "openai", "huggingface":
	default:
		return nil, fmt.Errorf("classifier.backend must be \"openai\" or \"huggingface\", got %q", cfg.Classifier.Backend)
	}

	// Router policy
	cfg.Router.ConfidenceFloor = viper.GetFloat64("router.confidence_floor")
	cfg.Router.TieEpsilon = viper.GetFloat64("router.tie_epsilon")
	cfg.Router.HistoryTurns = viper.GetInt("router.history_turns")
	cfg.Router.FAQTopK = viper.GetInt("router.faq_top_k")

	// Composer
	cfg.Composer.RephraseEnabled = viper.GetBool("composer.rephrase_enabled")

	// Sessions
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.TTL = viper.GetDuration("session.ttl")

	// Interaction log
	cfg.Interaction.BufferSize = viper.GetInt("interaction.buffer_size")

	// Chat delivery
	cfg.Chat.RateLimitPerMin = viper.GetInt("chat.rate_limit_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("store.driver", "sqlite3")
	viper.SetDefault("store.dsn", "olist.sqlite")

	viper.SetDefault("qdrant.url", "http://localhost:6333")
	viper.SetDefault("qdrant.collection_name", "faq")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("qdrant.score_floor", 0.30)

	viper.SetDefault("voyage.model", "voyage-3")

	viper.SetDefault("classifier.backend", "openai")
	viper.SetDefault("classifier.timeout", "10s")
	viper.SetDefault("classifier.openai.model", "gpt-4o-mini")
	viper.SetDefault("classifier.huggingface.model", "facebook/bart-large-mnli")

	viper.SetDefault("router.confidence_floor", 0.45)
	viper.SetDefault("router.tie_epsilon", 0.10)
	viper.SetDefault("router.history_turns", 3)
	viper.SetDefault("router.faq_top_k", 3)

	viper.SetDefault("composer.rephrase_enabled", false)

	viper.SetDefault("session.max_sessions", 10000)
	viper.SetDefault("session.ttl", "30m")

	viper.SetDefault("interaction.buffer_size", 256)

	viper.SetDefault("chat.rate_limit_per_min", 60)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
