// Package merge reconciles two profile records into one enriched record:
// field-level scalar merging, greedy section matching, and sentence-level
// description deduplication with provenance tracking.
package merge

import "strings"

// Origin tells which source a merged value came from. Provenance is part of
// the data model; how (and whether) it is shown is a rendering concern.
type Origin string

const (
	OriginPrimary   Origin = "primary"
	OriginSecondary Origin = "secondary"
)

// Value is a scalar field with provenance.
type Value struct {
	Text   string `json:"text"`
	Origin Origin `json:"origin"`
}

// Span is one description sentence with provenance.
type Span struct {
	Text   string `json:"text"`
	Origin Origin `json:"origin"`
}

// AnnotatedText is a merged description: ordered sentence spans, each with
// provenance. A verbatim text passed through the reconciler untouched keeps
// its original formatting when rendered.
type AnnotatedText struct {
	Spans    []Span `json:"spans,omitempty"`
	Verbatim bool   `json:"verbatim,omitempty"`
}

func (a AnnotatedText) IsEmpty() bool {
	return len(a.Spans) == 0
}

// verbatimText wraps untouched text as a single untagged span.
func verbatimText(text string, origin Origin) AnnotatedText {
	if strings.TrimSpace(text) == "" {
		return AnnotatedText{}
	}
	return AnnotatedText{
		Spans:    []Span{{Text: text, Origin: origin}},
		Verbatim: true,
	}
}

// RenderStyle controls how provenance appears in rendered output.
type RenderStyle struct {
	// Bullet prefixes each rendered sentence.
	Bullet string
	// SecondaryLabel is the marker appended to secondary-origin free-text
	// values, rendered as " [label]". Empty disables tagging entirely.
	SecondaryLabel string
}

// DefaultStyle matches the presentation the original review UI expects.
var DefaultStyle = RenderStyle{
	Bullet:         "• ",
	SecondaryLabel: "reference",
}

func (s RenderStyle) tagSuffix() string {
	if s.SecondaryLabel == "" {
		return ""
	}
	return " [" + s.SecondaryLabel + "]"
}

// Render produces the display text: one bullet line per span, secondary-origin
// spans tagged. Verbatim text is returned untouched.
func (a AnnotatedText) Render(style RenderStyle) string {
	if a.IsEmpty() {
		return ""
	}
	if a.Verbatim {
		return a.Spans[0].Text
	}

	lines := make([]string, 0, len(a.Spans))
	for _, span := range a.Spans {
		line := style.Bullet + span.Text
		if span.Origin == OriginSecondary {
			line += style.tagSuffix()
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Render produces the display form of a scalar, tagged when it came from the
// secondary source. Structured fields (dates, URLs) bypass this and use
// .Text directly; narrative claims and identity fields go through it.
func (v Value) Render(style RenderStyle) string {
	if v.Text == "" {
		return ""
	}
	if v.Origin == OriginSecondary {
		return v.Text + style.tagSuffix()
	}
	return v.Text
}
