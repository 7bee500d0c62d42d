package verify

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/vitae/internal/profile"
	"horse.fit/vitae/internal/similarity"
	"horse.fit/vitae/internal/textnorm"
)

func newTestScorer() *Scorer {
	normalizer := textnorm.New(textnorm.DefaultNoiseTerms)
	return NewScorer(similarity.New(normalizer, nil), zerolog.Nop())
}

func TestVerifyPairsVariantNamesAndGradesTitleDrift(t *testing.T) {
	t.Parallel()

	resume := &profile.Record{Experiences: []profile.Experience{{
		Title:       "Data Analyst",
		Institution: "Acme Corp",
		FromDate:    "2020-01",
		ToDate:      "Jun 2022",
	}}}
	reference := &profile.Record{Experiences: []profile.Experience{{
		Title:       "Data Analyst Intern",
		Institution: "Acme Corporation",
		FromDate:    "Jan 2020",
		ToDate:      "Jul 2022",
	}}}

	report := newTestScorer().Verify(context.Background(), resume, reference)

	if report.Statistics.MatchedExperiences != "1/1" {
		t.Fatalf("experiences not paired: %+v", report.Statistics)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("expected only the title finding, got %+v", report.Discrepancies)
	}
	d := report.Discrepancies[0]
	if d.Field != "title" || d.Severity != SeverityMedium {
		t.Fatalf("title drift graded wrong: %+v", d)
	}
	if report.Statistics.MediumSeverity != 1 || report.Statistics.HighSeverity != 0 || report.Statistics.LowSeverity != 0 {
		t.Fatalf("severity counts wrong: %+v", report.Statistics)
	}
	// One medium finding: 1.00 - 0.05.
	if report.OverallConfidence != 0.95 || report.ConfidenceBand != "high" {
		t.Fatalf("confidence wrong: %.2f (%s)", report.OverallConfidence, report.ConfidenceBand)
	}
}

func TestVerifyFlagsResumeOnlyExperienceHigh(t *testing.T) {
	t.Parallel()

	resume := &profile.Record{Experiences: []profile.Experience{
		{Title: "Backend Engineer", Institution: "Acme Corp"},
		{Title: "CTO", Institution: "Stealth Startup"},
	}}
	reference := &profile.Record{Experiences: []profile.Experience{
		{Title: "Backend Engineer", Institution: "Acme Corp"},
	}}

	report := newTestScorer().Verify(context.Background(), resume, reference)

	if report.Statistics.MatchedExperiences != "1/2" {
		t.Fatalf("pairing stats wrong: %+v", report.Statistics)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("expected one finding, got %+v", report.Discrepancies)
	}
	d := report.Discrepancies[0]
	if d.Severity != SeverityHigh || d.ResumeValue != "CTO at Stealth Startup" {
		t.Fatalf("unverifiable claim not graded high: %+v", d)
	}
	if report.OverallConfidence != 0.85 || report.ConfidenceBand != "good" {
		t.Fatalf("confidence wrong: %.2f (%s)", report.OverallConfidence, report.ConfidenceBand)
	}
}

func TestVerifyFlagsReferenceOnlyExperienceMedium(t *testing.T) {
	t.Parallel()

	resume := &profile.Record{}
	reference := &profile.Record{Experiences: []profile.Experience{
		{Title: "Data Analyst", Institution: "Globex"},
	}}

	report := newTestScorer().Verify(context.Background(), resume, reference)

	if len(report.Discrepancies) != 1 {
		t.Fatalf("expected one finding, got %+v", report.Discrepancies)
	}
	d := report.Discrepancies[0]
	if d.Severity != SeverityMedium || d.ReferenceValue != "Data Analyst at Globex" {
		t.Fatalf("omitted experience graded wrong: %+v", d)
	}
}

func TestVerifyGradesDateDrift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resumeTo string
		refTo    string
		severity Severity
		flagged  bool
	}{
		{"within tolerance", "Jun 2022", "Jul 2022", "", false},
		{"three months pass", "Mar 2022", "Jun 2022", "", false},
		{"five months medium", "Jan 2022", "Jun 2022", SeverityMedium, true},
		{"nine months high", "Jan 2022", "Oct 2022", SeverityHigh, true},
		{"unparseable skipped", "a while ago", "Jun 2022", "", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resume := &profile.Record{Experiences: []profile.Experience{{
				Title: "Backend Engineer", Institution: "Acme Corp", ToDate: tc.resumeTo,
			}}}
			reference := &profile.Record{Experiences: []profile.Experience{{
				Title: "Backend Engineer", Institution: "Acme Corp", ToDate: tc.refTo,
			}}}

			report := newTestScorer().Verify(context.Background(), resume, reference)
			if !tc.flagged {
				if len(report.Discrepancies) != 0 {
					t.Fatalf("unexpected findings: %+v", report.Discrepancies)
				}
				return
			}
			if len(report.Discrepancies) != 1 || report.Discrepancies[0].Severity != tc.severity {
				t.Fatalf("date drift graded wrong: %+v", report.Discrepancies)
			}
			if report.Discrepancies[0].Field != "to_date" {
				t.Fatalf("wrong field: %+v", report.Discrepancies[0])
			}
		})
	}
}

func TestVerifyComparesEducationsByPosition(t *testing.T) {
	t.Parallel()

	resume := &profile.Record{Educations: []profile.Education{
		{Degree: "BSc", Institution: "Tech University"},
		{Degree: "MSc", Institution: "Another School Entirely"},
	}}
	reference := &profile.Record{Educations: []profile.Education{
		{Degree: "Bachelor of Science", Institution: "Technical University of Lisbon"},
	}}

	report := newTestScorer().Verify(context.Background(), resume, reference)

	// Only the first position has a counterpart; the abbreviation "Tech"
	// folds into "Technical" but the missing city still costs similarity.
	if report.Statistics.MatchedEducations != "1/2" {
		t.Fatalf("education stats wrong: %+v", report.Statistics)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("expected one education finding, got %+v", report.Discrepancies)
	}
	d := report.Discrepancies[0]
	if d.Section != "education" || d.Severity != SeverityMedium {
		t.Fatalf("education drift graded wrong: %+v", d)
	}
}

func TestVerifySemanticFallbackOnScorerFailure(t *testing.T) {
	t.Parallel()

	desc := "Maintained the ingestion pipeline for clickstream events."
	resume := &profile.Record{Experiences: []profile.Experience{{
		Title: "Backend Engineer", Institution: "Acme Corp", Description: desc,
	}}}
	reference := &profile.Record{Experiences: []profile.Experience{{
		Title: "Backend Engineer", Institution: "Acme Corp", Description: desc,
	}}}

	// No embedding scorer wired: the description check must degrade to
	// term-frequency similarity instead of failing or flagging.
	report := newTestScorer().Verify(context.Background(), resume, reference)
	if len(report.Discrepancies) != 0 {
		t.Fatalf("identical descriptions flagged: %+v", report.Discrepancies)
	}
	if report.OverallConfidence != 1.0 {
		t.Fatalf("confidence should be perfect, got %.2f", report.OverallConfidence)
	}
}

func TestConfidenceMonotonicAndFloored(t *testing.T) {
	t.Parallel()

	var discrepancies []Discrepancy
	prev := confidence(discrepancies)
	if prev != 1.0 {
		t.Fatalf("empty report should score 1.0, got %.2f", prev)
	}
	for _, sev := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityHigh, SeverityHigh} {
		discrepancies = append(discrepancies, Discrepancy{Severity: sev})
		got := confidence(discrepancies)
		if got > prev {
			t.Fatalf("confidence rose from %.2f to %.2f after adding a finding", prev, got)
		}
		prev = got
	}

	for i := 0; i < 10; i++ {
		discrepancies = append(discrepancies, Discrepancy{Severity: SeverityHigh})
	}
	if got := confidence(discrepancies); got != 0 {
		t.Fatalf("confidence must floor at zero, got %.2f", got)
	}
}
