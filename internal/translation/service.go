// Package translation normalizes profile descriptions into the target
// language before sentence-level reconciliation. Providers are external
// collaborators: fallible, potentially slow, and never allowed to fail a
// merge; callers fall back to the untranslated text.
package translation

import (
	"context"
	"strings"
)

// Provider translates free-form professional text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "fr", "en")
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}

// normalizeLangCode reduces a language tag to its lowercase primary subtag
// ("EN-us" -> "en"). Invalid tags normalize to "".
func normalizeLangCode(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "_", "-")))
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		tag = tag[:dash]
	}
	for _, r := range tag {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return tag
}
