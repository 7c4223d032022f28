package interaction

import (
	"time"

	"ecommerce-support-agent/internal/model"
)

// Record is the per-turn trace emitted after every handled turn.
type Record struct {
	SessionID     string        `json:"session_id"`
	Utterance     string        `json:"utterance"`
	Intent        model.Intent  `json:"intent"`
	Confidence    float64       `json:"confidence"`
	ToolUsed      string        `json:"tool_used"`
	ResultSummary string        `json:"result_summary"`
	Latency       time.Duration `json:"latency"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Tool names recorded in ToolUsed.
const (
	ToolStructuredQuery = "structured_query"
	ToolFAQSearch       = "faq_search"
	ToolNone            = "none"
)
