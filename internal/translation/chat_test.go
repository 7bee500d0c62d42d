package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatCompletionsURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "http://localhost:8845/v1", want: "http://localhost:8845/v1/chat/completions"},
		{in: "http://localhost:8845/v1/chat/completions", want: "http://localhost:8845/v1/chat/completions"},
		{in: "http://localhost:8845", want: "http://localhost:8845/v1/chat/completions"},
	}
	for _, tc := range cases {
		if got := chatCompletionsURL(normalizeEndpoint(tc.in)); got != tc.want {
			t.Fatalf("chatCompletionsURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildTranslationPromptPreservesVocabularyRule(t *testing.T) {
	t.Parallel()

	prompt := buildTranslationPrompt("Développé des pipelines ETL en Python.", "en")
	if !strings.Contains(prompt, "English") {
		t.Fatalf("prompt missing target language name: %q", prompt)
	}
	if !strings.Contains(prompt, "exactly as they are") {
		t.Fatalf("prompt missing keep-terms instruction: %q", prompt)
	}
}

func TestChatProviderTranslate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			http.Error(w, "unexpected message shape", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Developed ETL pipelines in Python."}},
			},
		})
	}))
	defer server.Close()

	provider := NewChatProvider(server.URL+"/v1", "test-model")
	resp, err := provider.Translate(context.Background(), TranslateRequest{
		Text:       "Développé des pipelines ETL en Python.",
		SourceLang: "fr",
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if resp.Text != "Developed ETL pipelines in Python." {
		t.Fatalf("unexpected translation: %q", resp.Text)
	}
	if resp.ProviderName != "chat" || resp.TargetLang != "en" {
		t.Fatalf("unexpected response metadata: %+v", resp)
	}
}

func TestChatProviderRejectsMissingTarget(t *testing.T) {
	t.Parallel()

	provider := NewChatProvider("", "")
	if _, err := provider.Translate(context.Background(), TranslateRequest{Text: "x"}); err == nil {
		t.Fatalf("expected error for missing target language")
	}
}

func TestRegistryResolvesDefault(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("")
	if err := registry.Register(NewChatProvider("", "")); err != nil {
		t.Fatalf("register provider: %v", err)
	}

	provider, err := registry.Provider("")
	if err != nil {
		t.Fatalf("resolve default provider: %v", err)
	}
	if provider.Name() != "chat" {
		t.Fatalf("unexpected default provider: %q", provider.Name())
	}

	if _, err := registry.Provider("missing"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNormalizeLangCode(t *testing.T) {
	t.Parallel()

	if got := normalizeLangCode(" EN-us "); got != "en" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := normalizeLangCode("fr_FR"); got != "fr" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := normalizeLangCode("en123"); got != "" {
		t.Fatalf("expected invalid code to normalize empty, got %q", got)
	}
}
