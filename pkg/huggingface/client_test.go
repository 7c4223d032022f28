package huggingface_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-support-agent/pkg/huggingface"
)

func TestClient_Classify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req huggingface.ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Inputs == "cause_503" {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "model is loading"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"sequence": "where is my order",
			"labels": ["order_status", "faq", "payment_info"],
			"scores": [0.82, 0.11, 0.07]
		}`))
	}))
	defer ts.Close()

	client := huggingface.New("test-token").WithBaseURL(ts.URL)

	t.Run("successful classification", func(t *testing.T) {
		resp, err := client.Classify(context.Background(), "where is my order",
			[]string{"order_status", "faq", "payment_info"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Labels[0] != "order_status" {
			t.Errorf("expected top label order_status, got %q", resp.Labels[0])
		}
		if resp.Scores[0] != 0.82 {
			t.Errorf("unexpected top score: %v", resp.Scores[0])
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if _, err := client.Classify(context.Background(), "", []string{"faq"}); err == nil {
			t.Fatal("expected error on empty text")
		}
	})

	t.Run("no candidate labels", func(t *testing.T) {
		if _, err := client.Classify(context.Background(), "hello", nil); err == nil {
			t.Fatal("expected error on missing labels")
		}
	})

	t.Run("API error surfaces message", func(t *testing.T) {
		if _, err := client.Classify(context.Background(), "cause_503", []string{"faq"}); err == nil {
			t.Fatal("expected error on 503 response")
		}
	})
}
