package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ecommerce-support-agent/internal/model"
	pkgLog "ecommerce-support-agent/pkg/log"
	"ecommerce-support-agent/pkg/openai"
)

// OpenAIClassifier classifies intent with a hosted chat-completion model.
type OpenAIClassifier struct {
	client  openai.IOpenAI
	timeout time.Duration
	l       pkgLog.Logger
}

var _ Classifier = (*OpenAIClassifier)(nil)

// NewOpenAI creates an OpenAI-backed classifier.
func NewOpenAI(client openai.IOpenAI, timeout time.Duration, l pkgLog.Logger) *OpenAIClassifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIClassifier{
		client:  client,
		timeout: timeout,
		l:       l,
	}
}

// classifyPayload is the JSON shape the model is asked to return.
type classifyPayload struct {
	Intent     string `json:"intent"`
	Confidence int    `json:"confidence"` // 0-100
}

// Classify prompts the model to label the utterance with one intent.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string, history []string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	historyContext := ""
	if len(history) > 0 {
		historyContext = PromptHistoryPrefix
		for i, msg := range history {
			historyContext += fmt.Sprintf("%d. %s\n", i+1, msg)
		}
		historyContext += "\n"
	}

	prompt := historyContext + fmt.Sprintf(PromptClassifySystem, text)

	resp, err := c.client.ChatCompletion(ctx, &openai.Request{
		Messages: []openai.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: ClassifyTemperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s: LLM call failed: %w", LogPrefixClassify, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.l.Warnf(ctx, "%s: empty LLM response", LogPrefixClassify)
		return Result{Intent: model.IntentUnknown, Confidence: 0}, nil
	}

	responseText := stripCodeFences(resp.Choices[0].Message.Content)

	var payload classifyPayload
	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		c.l.Warnf(ctx, "%s: failed to parse JSON %q: %v", LogPrefixClassify, responseText, err)
		return keywordResult(responseText, text), nil
	}

	intent, verbatim := normalizeIntent(payload.Intent, text)
	if intent == model.IntentUnknown {
		return Result{Intent: model.IntentUnknown, Confidence: 0}, nil
	}

	confidence := float64(payload.Confidence) / 100.0
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if !verbatim {
		confidence = KeywordFallbackConfidence
	}

	c.l.Infof(ctx, "%s: classified as %s (confidence: %.2f)", LogPrefixClassify, intent, confidence)
	return Result{Intent: intent, Confidence: confidence}, nil
}

// keywordResult builds a Result from keyword normalization of the raw
// utterance when the model output could not be parsed at all.
func keywordResult(raw, utterance string) Result {
	intent, _ := normalizeIntent(raw, utterance)
	if intent == model.IntentUnknown {
		return Result{Intent: model.IntentUnknown, Confidence: 0}
	}
	return Result{Intent: intent, Confidence: KeywordFallbackConfidence}
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// JSON responses in (```json ... ```).
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
