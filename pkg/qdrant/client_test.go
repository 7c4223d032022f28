package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecommerce-support-agent/pkg/qdrant"
)

func TestQdrantClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		path := r.URL.Path

		if r.Method == http.MethodPut && strings.HasSuffix(path, "/points") {
			var req qdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.Points) > 0 {
				payload := req.Points[0].Payload
				if val, ok := payload["cause_500"]; ok && val == true {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			return
		}

		if r.Method == http.MethodPost && strings.HasSuffix(path, "/points/search") {
			var req qdrant.SearchRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Limit == 999 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"result": [
					{
						"id": "ab1",
						"score": 0.91,
						"payload": {"question": "What is the refund policy?", "answer": "30 days.", "position": 0}
					}
				],
				"status": "ok",
				"time": 0.02
			}`))
			return
		}

		if r.Method == http.MethodPost && strings.HasSuffix(path, "/points/count") {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"result": {"count": 42}}`))
			return
		}

		if r.Method == http.MethodPut && strings.Contains(path, "/collections/") {
			w.WriteHeader(http.StatusCreated)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL)

	t.Run("CreateCollection", func(t *testing.T) {
		err := client.CreateCollection(context.Background(), qdrant.CreateCollectionRequest{
			Name:    "faq",
			Vectors: qdrant.VectorConfig{Size: 1024, Distance: "Cosine"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UpsertPoints", func(t *testing.T) {
		err := client.UpsertPoints(context.Background(), "faq", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{
				{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Vector: []float32{0.1, 0.2}, Payload: map[string]interface{}{"question": "q"}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UpsertPoints API error", func(t *testing.T) {
		err := client.UpsertPoints(context.Background(), "faq", qdrant.UpsertPointsRequest{
			Points: []qdrant.Point{
				{ID: "x", Payload: map[string]interface{}{"cause_500": true}},
			},
		})
		if err == nil {
			t.Fatal("expected error on 500 response")
		}
	})

	t.Run("SearchPoints", func(t *testing.T) {
		resp, err := client.SearchPoints(context.Background(), "faq", qdrant.SearchRequest{
			Vector:      []float32{0.1, 0.2},
			Limit:       3,
			WithPayload: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Result) != 1 {
			t.Fatalf("expected 1 result, got %d", len(resp.Result))
		}
		if resp.Result[0].Score != 0.91 {
			t.Errorf("unexpected score: %v", resp.Result[0].Score)
		}
		if resp.Result[0].Payload["answer"] != "30 days." {
			t.Errorf("unexpected payload: %+v", resp.Result[0].Payload)
		}
	})

	t.Run("SearchPoints API error", func(t *testing.T) {
		_, err := client.SearchPoints(context.Background(), "faq", qdrant.SearchRequest{Limit: 999})
		if err == nil {
			t.Fatal("expected error on 500 response")
		}
	})

	t.Run("CountPoints", func(t *testing.T) {
		count, err := client.CountPoints(context.Background(), "faq")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 42 {
			t.Errorf("expected 42 points, got %d", count)
		}
	})
}
