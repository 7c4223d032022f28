package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecommerce-support-agent/internal/model"
	"ecommerce-support-agent/pkg/huggingface"
	"ecommerce-support-agent/pkg/openai"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockOpenAI struct {
	completionFunc func(req *openai.Request) (*openai.Response, error)
}

func (m *mockOpenAI) ChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	return m.completionFunc(req)
}

func (m *mockOpenAI) Model() string { return "gpt-test" }

func textResponse(content string) *openai.Response {
	return &openai.Response{
		Choices: []openai.Choice{
			{Message: openai.Message{Role: "assistant", Content: content}},
		},
	}
}

func TestOpenAIClassifier_Classify(t *testing.T) {
	t.Run("clean JSON response", func(t *testing.T) {
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				return textResponse(`{"intent": "order_status", "confidence": 92}`), nil
			},
		}, time.Second, &mockLogger{})

		res, err := c.Classify(context.Background(), "where is order abc", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Intent != model.IntentOrderStatus {
			t.Errorf("expected order_status, got %s", res.Intent)
		}
		if res.Confidence != 0.92 {
			t.Errorf("expected confidence 0.92, got %v", res.Confidence)
		}
	})

	t.Run("fenced JSON response", func(t *testing.T) {
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				return textResponse("```json\n{\"intent\": \"faq\", \"confidence\": 80}\n```"), nil
			},
		}, time.Second, &mockLogger{})

		res, err := c.Classify(context.Background(), "what is your refund policy?", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Intent != model.IntentFAQ {
			t.Errorf("expected faq, got %s", res.Intent)
		}
	})

	t.Run("malformed output falls back to keywords", func(t *testing.T) {
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				return textResponse("I think the user wants order info"), nil
			},
		}, time.Second, &mockLogger{})

		res, err := c.Classify(context.Background(), "tell me about my order please", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Intent != model.IntentOrderStatus {
			t.Errorf("expected keyword-normalized order_status, got %s", res.Intent)
		}
		if res.Confidence != KeywordFallbackConfidence {
			t.Errorf("expected fallback confidence, got %v", res.Confidence)
		}
	})

	t.Run("malformed output with no keywords is unknown", func(t *testing.T) {
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				return textResponse("gibberish"), nil
			},
		}, time.Second, &mockLogger{})

		res, err := c.Classify(context.Background(), "hello there", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Intent != model.IntentUnknown || res.Confidence != 0 {
			t.Errorf("expected unknown/0, got %s/%v", res.Intent, res.Confidence)
		}
	})

	t.Run("transport failure returns error", func(t *testing.T) {
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				return nil, errors.New("connection refused")
			},
		}, time.Second, &mockLogger{})

		if _, err := c.Classify(context.Background(), "where is my order", nil); err == nil {
			t.Fatal("expected transport error to surface")
		}
	})

	t.Run("history is included in prompt", func(t *testing.T) {
		var gotPrompt string
		c := NewOpenAI(&mockOpenAI{
			completionFunc: func(req *openai.Request) (*openai.Response, error) {
				gotPrompt = req.Messages[0].Content
				return textResponse(`{"intent": "payment_info", "confidence": 75}`), nil
			},
		}, time.Second, &mockLogger{})

		_, err := c.Classify(context.Background(), "what about the payment?",
			[]string{"Check order status for abc123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPrompt == "" || !contains(gotPrompt, "abc123") {
			t.Errorf("expected history in prompt, got %q", gotPrompt)
		}
	})
}

type mockHF struct {
	classifyFunc func(text string, labels []string) (*huggingface.ClassifyResponse, error)
}

func (m *mockHF) Classify(ctx context.Context, text string, labels []string) (*huggingface.ClassifyResponse, error) {
	return m.classifyFunc(text, labels)
}

func TestHuggingFaceClassifier_Classify(t *testing.T) {
	t.Run("top two labels mapped", func(t *testing.T) {
		c := NewHuggingFace(&mockHF{
			classifyFunc: func(text string, labels []string) (*huggingface.ClassifyResponse, error) {
				return &huggingface.ClassifyResponse{
					Labels: []string{"faq", "payment_info", "order_status"},
					Scores: []float64{0.41, 0.38, 0.21},
				}, nil
			},
		}, time.Second, &mockLogger{})

		res, err := c.Classify(context.Background(), "how do refunds reach my card?", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Intent != model.IntentFAQ {
			t.Errorf("expected faq, got %s", res.Intent)
		}
		if res.AltIntent != model.IntentPaymentInfo {
			t.Errorf("expected payment_info runner-up, got %s", res.AltIntent)
		}
		if res.AltConfidence != 0.38 {
			t.Errorf("unexpected alt confidence: %v", res.AltConfidence)
		}
	})

	t.Run("backend error surfaces", func(t *testing.T) {
		c := NewHuggingFace(&mockHF{
			classifyFunc: func(text string, labels []string) (*huggingface.ClassifyResponse, error) {
				return nil, errors.New("model is loading")
			},
		}, time.Second, &mockLogger{})

		if _, err := c.Classify(context.Background(), "where is my order", nil); err == nil {
			t.Fatal("expected error to surface")
		}
	})

	t.Run("candidate labels cover the closed set", func(t *testing.T) {
		var gotLabels []string
		c := NewHuggingFace(&mockHF{
			classifyFunc: func(text string, labels []string) (*huggingface.ClassifyResponse, error) {
				gotLabels = labels
				return &huggingface.ClassifyResponse{
					Labels: []string{"order_status"},
					Scores: []float64{0.9},
				}, nil
			},
		}, time.Second, &mockLogger{})

		if _, err := c.Classify(context.Background(), "status of order abc", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotLabels) != len(model.Intents) {
			t.Errorf("expected %d candidate labels, got %d", len(model.Intents), len(gotLabels))
		}
	})
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
