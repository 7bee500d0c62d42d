package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	DefaultEmbeddingEndpoint       = "http://127.0.0.1:8844/embed"
	DefaultEmbeddingModelName      = "Qwen3-Embedding-8B"
	DefaultEmbeddingMaxLength      = 512
	DefaultEmbeddingRequestTimeout = 45 * time.Second
)

// Vector delegates sentence-level semantic similarity to the configured
// SemanticScorer. It returns 0.0 without calling out when either span is
// blank. Errors are the scorer's; callers recover by falling back to a
// lexical score.
func (e *Engine) Vector(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0, nil
	}
	if e.semantic == nil {
		return 0.0, fmt.Errorf("no semantic scorer configured")
	}
	return e.semantic.Score(ctx, a, b)
}

// EmbeddingScorer scores span pairs by requesting embeddings from an HTTP
// embedding service and computing cosine locally. It speaks the native
// {"texts": [...]} payload and falls back to the OpenAI-style {"input": [...]}
// shape when the endpoint path ends in /v1/embeddings.
type EmbeddingScorer struct {
	endpoint  string
	model     string
	maxLength int
	client    *http.Client
}

type EmbeddingOptions struct {
	Endpoint       string
	Model          string
	MaxLength      int
	RequestTimeout time.Duration
}

func NewEmbeddingScorer(opts EmbeddingOptions) *EmbeddingScorer {
	endpoint := normalizeEmbeddingEndpoint(opts.Endpoint)
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultEmbeddingModelName
	}
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultEmbeddingMaxLength
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultEmbeddingRequestTimeout
	}
	return &EmbeddingScorer{
		endpoint:  endpoint,
		model:     model,
		maxLength: maxLength,
		client:    &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Texts     []string `json:"texts,omitempty"`
	Input     []string `json:"input,omitempty"`
	Model     string   `json:"model,omitempty"`
	MaxLength int      `json:"max_length,omitempty"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Data       []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (s *EmbeddingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	vectors, err := s.embed(ctx, []string{a, b})
	if err != nil {
		return 0.0, err
	}
	if len(vectors) != 2 {
		return 0.0, fmt.Errorf("embedding response count mismatch: requested=2 returned=%d", len(vectors))
	}
	if len(vectors[0]) == 0 || len(vectors[0]) != len(vectors[1]) {
		return 0.0, fmt.Errorf("embedding dimensions mismatch: %d vs %d", len(vectors[0]), len(vectors[1]))
	}

	score := cosine(vectors[0], vectors[1])
	if math.IsNaN(score) {
		return 0.0, fmt.Errorf("embedding produced a zero vector")
	}
	// Cosine over learned embeddings can drift marginally outside [0,1].
	return clamp01(score), nil
}

func (s *EmbeddingScorer) embed(ctx context.Context, texts []string) ([][]float64, error) {
	payload := embedRequest{
		Texts:     texts,
		MaxLength: s.maxLength,
	}
	if parsed, err := url.Parse(s.endpoint); err == nil && strings.HasSuffix(parsed.Path, "/v1/embeddings") {
		payload = embedRequest{
			Input: texts,
			Model: s.model,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embedding response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding service status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}

	vectors := parsed.Embeddings
	if len(vectors) == 0 && len(parsed.Data) > 0 {
		sort.Slice(parsed.Data, func(i, j int) bool {
			return parsed.Data[i].Index < parsed.Data[j].Index
		})
		vectors = make([][]float64, 0, len(parsed.Data))
		for _, row := range parsed.Data {
			vectors = append(vectors, row.Embedding)
		}
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding response missing vectors")
	}
	return vectors, nil
}

func normalizeEmbeddingEndpoint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultEmbeddingEndpoint
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = "/embed"
	}
	return parsed.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
