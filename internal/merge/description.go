package merge

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"horse.fit/vitae/internal/sentence"
	"horse.fit/vitae/internal/similarity"
	"horse.fit/vitae/internal/translation"
)

const (
	// charMatchThreshold pairs sentences on near-identical surface form.
	charMatchThreshold = 0.85
	// vectorMatchThreshold pairs paraphrases via embeddings.
	vectorMatchThreshold = 0.80
	// preferSecondaryLengthRatio keeps the secondary phrasing of a matched
	// pair when it is substantially more detailed.
	preferSecondaryLengthRatio = 1.5
)

// DescriptionOptions carries the optional collaborators of a
// DescriptionReconciler. All of them may be left zero: translation and
// language detection are then skipped, and merges run on raw text.
type DescriptionOptions struct {
	Translator     translation.Provider
	DetectLanguage func(text string) string
	TargetLanguage string
	Logger         zerolog.Logger
}

// DescriptionReconciler merges two free-text descriptions sentence by
// sentence: duplicates collapse, near-duplicates resolve to one phrasing, and
// sentences unique to the secondary text are appended with their provenance.
//
// Collaborator failures (translation, embeddings) never fail a merge; the
// reconciler degrades to the text it has.
type DescriptionReconciler struct {
	engine     *similarity.Engine
	segmenter  sentence.Segmenter
	translator translation.Provider
	detect     func(string) string
	targetLang string
	logger     zerolog.Logger
}

func NewDescriptionReconciler(engine *similarity.Engine, segmenter sentence.Segmenter, opts DescriptionOptions) *DescriptionReconciler {
	return &DescriptionReconciler{
		engine:     engine,
		segmenter:  segmenter,
		translator: opts.Translator,
		detect:     opts.DetectLanguage,
		targetLang: translationTarget(opts.TargetLanguage),
		logger:     opts.Logger,
	}
}

func translationTarget(lang string) string {
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}

// Merge reconciles the primary description against the secondary one.
//
// An empty secondary returns the primary text verbatim: no segmentation, no
// reformatting. An empty primary returns the secondary sentences, each marked
// as secondary-origin.
func (r *DescriptionReconciler) Merge(ctx context.Context, primary, secondary string) AnnotatedText {
	if strings.TrimSpace(secondary) == "" {
		return verbatimText(primary, OriginPrimary)
	}

	primarySentences := r.sentences(ctx, primary, true)
	secondarySentences := r.sentences(ctx, secondary, false)

	if len(primarySentences) == 0 {
		spans := make([]Span, 0, len(secondarySentences))
		for _, s := range secondarySentences {
			spans = append(spans, Span{Text: s, Origin: OriginSecondary})
		}
		return AnnotatedText{Spans: spans}
	}

	consumed := make([]bool, len(secondarySentences))
	spans := make([]Span, 0, len(primarySentences)+len(secondarySentences))

	for _, ps := range primarySentences {
		text := ps
		if idx, ok := r.findCounterpart(ctx, ps, secondarySentences, consumed); ok {
			consumed[idx] = true
			if preferSecondary(ps, secondarySentences[idx]) {
				text = secondarySentences[idx]
			}
		}
		// A sentence both sources state is an agreed fact, not an
		// external claim, whichever phrasing survived.
		spans = append(spans, Span{Text: text, Origin: OriginPrimary})
	}

	for i, ss := range secondarySentences {
		if !consumed[i] {
			spans = append(spans, Span{Text: ss, Origin: OriginSecondary})
		}
	}
	return AnnotatedText{Spans: spans}
}

// sentences translates, segments, filters and dedups one description. The
// length floor screens scraped reference text only: a short sentence in the
// candidate's own document still carries a claim worth matching, so keepShort
// exempts the primary side from it.
func (r *DescriptionReconciler) sentences(ctx context.Context, text string, keepShort bool) []string {
	text = r.translateIfNeeded(ctx, text)

	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, s := range r.segmenter.Segment(text) {
		if keepShort {
			if sentence.Enumeration(s) {
				continue
			}
		} else if !sentence.Usable(s) {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// findCounterpart scans unconsumed secondary sentences in order and returns
// the first one matching the primary sentence: identical after normalization,
// near-identical by character similarity, or a paraphrase by embedding
// similarity. Embedding failures count as no match.
func (r *DescriptionReconciler) findCounterpart(ctx context.Context, primary string, candidates []string, consumed []bool) (int, bool) {
	normPrimary := r.engine.Normalizer().Normalize(primary)

	for i, candidate := range candidates {
		if consumed[i] {
			continue
		}
		if normPrimary != "" && normPrimary == r.engine.Normalizer().Normalize(candidate) {
			return i, true
		}
		if r.engine.Char(primary, candidate) >= charMatchThreshold {
			return i, true
		}
		score, err := r.engine.Vector(ctx, primary, candidate)
		if err != nil {
			r.logger.Warn().Err(err).Msg("semantic sentence match unavailable, continuing without it")
			continue
		}
		if score >= vectorMatchThreshold {
			return i, true
		}
	}
	return 0, false
}

// preferSecondary decides which phrasing of a matched sentence pair survives:
// the secondary wins when it carries a numeral the primary lacks, or when it
// is at least half again as long.
func preferSecondary(primary, secondary string) bool {
	if hasNumeral(secondary) && !hasNumeral(primary) {
		return true
	}
	return float64(len(secondary)) >= preferSecondaryLengthRatio*float64(len(primary))
}

func hasNumeral(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// translateIfNeeded brings a description into the target language when a
// detector and provider are wired. Detection or translation failures fall
// back to the original text.
func (r *DescriptionReconciler) translateIfNeeded(ctx context.Context, text string) string {
	if r.translator == nil || r.detect == nil || strings.TrimSpace(text) == "" {
		return text
	}
	lang := r.detect(text)
	if lang == "" || lang == r.targetLang {
		return text
	}

	resp, err := r.translator.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: lang,
		TargetLang: r.targetLang,
	})
	if err != nil {
		r.logger.Warn().Err(err).Str("source_lang", lang).Msg("translation failed, keeping original text")
		return text
	}
	if strings.TrimSpace(resp.Text) == "" {
		return text
	}
	return resp.Text
}
