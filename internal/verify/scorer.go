package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/vitae/internal/match"
	"horse.fit/vitae/internal/profile"
	"horse.fit/vitae/internal/similarity"
)

// Entity-pairing weights: the employer name identifies a position more
// reliably than its title, which drifts across sources.
const (
	institutionKeyWeight = 0.6
	titleKeyWeight       = 0.4
	pairingThreshold     = 0.5
)

// Field-level thresholds, on the 0-100 similarity scale.
const (
	institutionHighBelow   = 60.0
	institutionMediumBelow = 80.0
	titleHighBelow         = 50.0
	titleMediumBelow       = 70.0
)

// Date tolerance in whole months.
const (
	dateHighAbove   = 6
	dateMediumAbove = 3
)

// Description agreement thresholds, on the 0-1 scale.
const (
	descriptionMediumBelow = 0.5
	descriptionLowBelow    = 0.7
)

const educationMediumBelow = 80.0

// Scorer verifies a résumé against a reference profile.
type Scorer struct {
	engine *similarity.Engine
	logger zerolog.Logger
	now    func() time.Time
}

func NewScorer(engine *similarity.Engine, logger zerolog.Logger) *Scorer {
	return &Scorer{
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Verify pairs experiences between the two records, cross-checks each pair
// field by field, compares educations positionally, and folds all findings
// into a confidence score.
func (s *Scorer) Verify(ctx context.Context, resume, reference *profile.Record) *Report {
	if resume == nil {
		resume = &profile.Record{}
	}
	if reference == nil {
		reference = &profile.Record{}
	}

	var discrepancies []Discrepancy

	matcher := &match.Matcher[profile.Experience]{
		Similarity: s.engine.TermFrequency,
		Keys: []match.Key[profile.Experience]{
			{Name: "institution", Weight: institutionKeyWeight, Value: func(e profile.Experience) string { return e.Institution }},
			{Name: "title", Weight: titleKeyWeight, Value: func(e profile.Experience) string { return e.Title }},
		},
		Threshold: pairingThreshold,
	}
	result := matcher.Match(resume.Experiences, reference.Experiences)

	paired := make(map[int]int, len(result.Pairs))
	for _, p := range result.Pairs {
		paired[p.Primary] = p.Secondary
	}

	for i, exp := range resume.Experiences {
		j, ok := paired[i]
		if !ok {
			discrepancies = append(discrepancies, Discrepancy{
				Section:     "experience",
				Field:       "entry",
				ResumeValue: experienceLabel(exp),
				Severity:    SeverityHigh,
				Reason:      "experience not found in reference profile",
			})
			continue
		}
		discrepancies = append(discrepancies, s.checkExperiencePair(ctx, exp, reference.Experiences[j])...)
	}
	for _, j := range result.Unmatched {
		discrepancies = append(discrepancies, Discrepancy{
			Section:        "experience",
			Field:          "entry",
			ReferenceValue: experienceLabel(reference.Experiences[j]),
			Severity:       SeverityMedium,
			Reason:         "reference profile experience not listed on résumé",
		})
	}

	matchedEducations := 0
	for i, edu := range resume.Educations {
		if i >= len(reference.Educations) {
			break
		}
		matchedEducations++
		discrepancies = append(discrepancies, s.checkEducationPair(edu, reference.Educations[i])...)
	}

	score := confidence(discrepancies)
	high, medium, low := countBySeverity(discrepancies)
	report := &Report{
		Summary:           summarize(score, discrepancies),
		Discrepancies:     discrepancies,
		OverallConfidence: score,
		ConfidenceBand:    confidenceBand(score),
		Statistics: Statistics{
			MatchedExperiences: fmt.Sprintf("%d/%d", len(result.Pairs), len(resume.Experiences)),
			MatchedEducations:  fmt.Sprintf("%d/%d", matchedEducations, len(resume.Educations)),
			HighSeverity:       high,
			MediumSeverity:     medium,
			LowSeverity:        low,
			TotalDiscrepancies: len(discrepancies),
		},
	}
	s.logger.Info().
		Float64("confidence", report.OverallConfidence).
		Str("band", report.ConfidenceBand).
		Int("discrepancies", len(discrepancies)).
		Msg("verification complete")
	return report
}

// checkExperiencePair cross-checks one paired position on institution, title,
// start and end dates, and description agreement.
func (s *Scorer) checkExperiencePair(ctx context.Context, resume, reference profile.Experience) []Discrepancy {
	var out []Discrepancy

	if resume.Institution != "" && reference.Institution != "" {
		score := s.engine.TermFrequency(resume.Institution, reference.Institution) * 100
		if severity, flagged := gradeBelow(score, institutionHighBelow, institutionMediumBelow); flagged {
			out = append(out, Discrepancy{
				Section:        "experience",
				Field:          "institution",
				ResumeValue:    resume.Institution,
				ReferenceValue: reference.Institution,
				Severity:       severity,
				Reason:         fmt.Sprintf("institution names agree at %.0f%%", score),
			})
		}
	}

	if resume.Title != "" && reference.Title != "" {
		score := s.engine.TermFrequency(resume.Title, reference.Title) * 100
		if severity, flagged := gradeBelow(score, titleHighBelow, titleMediumBelow); flagged {
			out = append(out, Discrepancy{
				Section:        "experience",
				Field:          "title",
				ResumeValue:    resume.Title,
				ReferenceValue: reference.Title,
				Severity:       severity,
				Reason:         fmt.Sprintf("job titles agree at %.0f%%", score),
			})
		}
	}

	out = append(out, s.checkDates("from_date", resume.FromDate, reference.FromDate)...)
	out = append(out, s.checkDates("to_date", resume.ToDate, reference.ToDate)...)
	out = append(out, s.checkDescriptions(ctx, resume.Description, reference.Description)...)
	return out
}

func (s *Scorer) checkDates(field, resumeDate, referenceDate string) []Discrepancy {
	a, okA := parseDate(resumeDate, s.now())
	b, okB := parseDate(referenceDate, s.now())
	if !okA || !okB {
		// Unparseable or absent dates are a data-quality problem, not
		// evidence of disagreement.
		return nil
	}

	months := monthsBetween(a, b)
	severity := Severity("")
	switch {
	case months > dateHighAbove:
		severity = SeverityHigh
	case months > dateMediumAbove:
		severity = SeverityMedium
	default:
		return nil
	}
	return []Discrepancy{{
		Section:        "experience",
		Field:          field,
		ResumeValue:    resumeDate,
		ReferenceValue: referenceDate,
		Severity:       severity,
		Reason:         fmt.Sprintf("dates differ by %d month(s)", months),
	}}
}

// checkDescriptions scores semantic agreement of the two narratives. When the
// embedding collaborator is unavailable the check degrades to term-frequency
// similarity instead of failing the run.
func (s *Scorer) checkDescriptions(ctx context.Context, resumeDesc, referenceDesc string) []Discrepancy {
	if resumeDesc == "" || referenceDesc == "" {
		return nil
	}

	score, err := s.engine.Vector(ctx, resumeDesc, referenceDesc)
	if err != nil {
		s.logger.Warn().Err(err).Msg("semantic description check unavailable, using term-frequency similarity")
		score = s.engine.TermFrequency(resumeDesc, referenceDesc)
	}

	severity := Severity("")
	switch {
	case score < descriptionMediumBelow:
		severity = SeverityMedium
	case score < descriptionLowBelow:
		severity = SeverityLow
	default:
		return nil
	}
	return []Discrepancy{{
		Section:        "experience",
		Field:          "description",
		ResumeValue:    resumeDesc,
		ReferenceValue: referenceDesc,
		Severity:       severity,
		Reason:         fmt.Sprintf("descriptions agree at %.2f", score),
	}}
}

// checkEducationPair compares educations positionally, institution only.
// Degrees vary too much in phrasing across sources to grade reliably.
func (s *Scorer) checkEducationPair(resume, reference profile.Education) []Discrepancy {
	if resume.Institution == "" || reference.Institution == "" {
		return nil
	}
	score := s.engine.TermFrequency(resume.Institution, reference.Institution) * 100
	if score >= educationMediumBelow {
		return nil
	}
	return []Discrepancy{{
		Section:        "education",
		Field:          "institution",
		ResumeValue:    resume.Institution,
		ReferenceValue: reference.Institution,
		Severity:       SeverityMedium,
		Reason:         fmt.Sprintf("institution names agree at %.0f%%", score),
	}}
}

// gradeBelow maps a 0-100 similarity to a severity against two floor
// thresholds. Scores at or above the medium floor pass.
func gradeBelow(score, highBelow, mediumBelow float64) (Severity, bool) {
	switch {
	case score < highBelow:
		return SeverityHigh, true
	case score < mediumBelow:
		return SeverityMedium, true
	default:
		return "", false
	}
}

func experienceLabel(e profile.Experience) string {
	switch {
	case e.Title != "" && e.Institution != "":
		return e.Title + " at " + e.Institution
	case e.Title != "":
		return e.Title
	default:
		return e.Institution
	}
}
