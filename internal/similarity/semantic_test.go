package similarity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func embeddingServer(t *testing.T, vectors map[string][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		texts := req.Texts
		if len(texts) == 0 {
			texts = req.Input
		}
		resp := embedResponse{}
		for _, text := range texts {
			vector, found := vectors[text]
			if !found {
				http.Error(w, "unknown text", http.StatusBadRequest)
				return
			}
			resp.Embeddings = append(resp.Embeddings, vector)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbeddingScorerCosine(t *testing.T) {
	t.Parallel()

	server := embeddingServer(t, map[string][]float64{
		"built a dashboard":   {1, 0, 0},
		"created a dashboard": {0.9, 0.1, 0},
		"rode a horse":        {0, 1, 0},
	})
	defer server.Close()

	scorer := NewEmbeddingScorer(EmbeddingOptions{Endpoint: server.URL + "/embed"})

	near, err := scorer.Score(context.Background(), "built a dashboard", "created a dashboard")
	if err != nil {
		t.Fatalf("score close pair: %v", err)
	}
	if near < 0.9 {
		t.Fatalf("close pair scored %f, want >= 0.9", near)
	}

	far, err := scorer.Score(context.Background(), "built a dashboard", "rode a horse")
	if err != nil {
		t.Fatalf("score far pair: %v", err)
	}
	if far > 0.1 {
		t.Fatalf("far pair scored %f, want <= 0.1", far)
	}
}

func TestEmbeddingScorerServiceFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	scorer := NewEmbeddingScorer(EmbeddingOptions{Endpoint: server.URL + "/embed"})
	if _, err := scorer.Score(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error from failing embedding service")
	}
}

func TestVectorBlankInputShortCircuits(t *testing.T) {
	t.Parallel()

	// Blank spans never reach the collaborator, so a nil scorer is fine here.
	e := newTestEngine()
	got, err := e.Vector(context.Background(), "", "anything")
	if err != nil || got != 0.0 {
		t.Fatalf("blank span: got %f, %v; want 0.0, nil", got, err)
	}
}

func TestVectorWithoutScorerErrors(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	if _, err := e.Vector(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error when no semantic scorer is configured")
	}
}

func TestNormalizeEmbeddingEndpoint(t *testing.T) {
	t.Parallel()

	if got := normalizeEmbeddingEndpoint("http://127.0.0.1:8844"); got != "http://127.0.0.1:8844/embed" {
		t.Fatalf("unexpected endpoint normalization: %q", got)
	}
	if got := normalizeEmbeddingEndpoint("http://127.0.0.1:8844/v1/embeddings"); got != "http://127.0.0.1:8844/v1/embeddings" {
		t.Fatalf("explicit path rewritten: %q", got)
	}
	if got := normalizeEmbeddingEndpoint(""); got != DefaultEmbeddingEndpoint {
		t.Fatalf("blank endpoint not defaulted: %q", got)
	}
}
