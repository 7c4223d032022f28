package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-support-agent/pkg/openai"
)

func TestNew(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		if _, err := openai.New(openai.Config{}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		client, err := openai.New(openai.Config{APIKey: "test-key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.Model() != openai.DefaultModel {
			t.Errorf("expected default model, got %q", client.Model())
		}
	})
}

func TestClient_ChatCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req openai.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(req.Messages) > 0 && req.Messages[len(req.Messages)-1].Content == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "order_status"}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 12, "completion_tokens": 2, "total_tokens": 14}
		}`))
	}))
	defer ts.Close()

	client, err := openai.New(openai.Config{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("successful completion", func(t *testing.T) {
		resp, err := client.ChatCompletion(context.Background(), &openai.Request{
			Messages: []openai.Message{{Role: "user", Content: "classify this"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Choices) != 1 {
			t.Fatalf("expected 1 choice, got %d", len(resp.Choices))
		}
		if resp.Choices[0].Message.Content != "order_status" {
			t.Errorf("unexpected content: %q", resp.Choices[0].Message.Content)
		}
	})

	t.Run("API error surfaces message", func(t *testing.T) {
		_, err := client.ChatCompletion(context.Background(), &openai.Request{
			Messages: []openai.Message{{Role: "user", Content: "cause_500"}},
		})
		if err == nil {
			t.Fatal("expected error on 500 response")
		}
	})
}
