package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/vitae/internal/config"
	"horse.fit/vitae/internal/langdetect"
	"horse.fit/vitae/internal/merge"
	"horse.fit/vitae/internal/profile"
	"horse.fit/vitae/internal/sentence"
	"horse.fit/vitae/internal/similarity"
	"horse.fit/vitae/internal/textnorm"
	"horse.fit/vitae/internal/translation"
	"horse.fit/vitae/internal/verify"
)

// buildEngine assembles the similarity engine. Semantic scoring is only wired
// when an embedding endpoint is configured; the engine degrades cleanly
// without it.
func buildEngine(cfg *config.Config) *similarity.Engine {
	var semantic similarity.SemanticScorer
	if strings.TrimSpace(cfg.EmbeddingEndpoint) != "" {
		semantic = similarity.NewEmbeddingScorer(similarity.EmbeddingOptions{
			Endpoint: cfg.EmbeddingEndpoint,
			Model:    cfg.EmbeddingModel,
		})
	}
	return similarity.New(textnorm.New(textnorm.DefaultNoiseTerms), semantic)
}

// buildReconciler wires the full merge stack: similarity engine, sentence
// segmentation, language detection and the configured translation provider.
// A missing translation provider downgrades to untranslated merging.
func buildReconciler(cfg *config.Config, engine *similarity.Engine, logger zerolog.Logger) (*merge.ProfileReconciler, error) {
	segmenter, err := sentence.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("build sentence tokenizer: %w", err)
	}

	registry := translation.NewRegistryFromEnv()
	provider, err := registry.Provider(registry.DefaultProvider())
	if err != nil {
		logger.Warn().Err(err).Msg("translation provider unavailable, merging without translation")
		provider = nil
	}

	descriptions := merge.NewDescriptionReconciler(engine, segmenter, merge.DescriptionOptions{
		Translator:     provider,
		DetectLanguage: langdetect.DetectISO6391,
		TargetLanguage: cfg.TargetLanguage,
		Logger:         logger,
	})
	return merge.NewProfileReconciler(engine, descriptions, logger), nil
}

func buildScorer(engine *similarity.Engine, logger zerolog.Logger) *verify.Scorer {
	return verify.NewScorer(engine, logger)
}

// readProfile loads and validates one profile document. Malformed input is
// the one fatal error class in the CLI.
func readProfile(path string) (*profile.Record, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	record, err := profile.Decode(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return record, raw, nil
}

// writeOutput writes result JSON to a file, or stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
