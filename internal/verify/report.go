package verify

import (
	"fmt"
	"math"
)

// Severity grades how damaging a discrepancy is to the résumé's credibility.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// confidence penalties per discrepancy, by severity.
const (
	penaltyHigh   = 0.15
	penaltyMedium = 0.05
	penaltyLow    = 0.02
)

// Discrepancy is one disagreement between the résumé and the reference
// profile. ResumeValue and ReferenceValue carry the raw conflicting values so
// a reviewer can judge without re-opening either document.
type Discrepancy struct {
	Section        string   `json:"section"`
	Field          string   `json:"field"`
	ResumeValue    string   `json:"resume_value"`
	ReferenceValue string   `json:"reference_value"`
	Severity       Severity `json:"severity"`
	Reason         string   `json:"reason"`
}

// Statistics summarize entity-level coverage and finding counts. Matched
// counts render as "matched/total" against the résumé side.
type Statistics struct {
	MatchedExperiences string `json:"matched_experiences"`
	MatchedEducations  string `json:"matched_educations"`
	HighSeverity       int    `json:"high_severity"`
	MediumSeverity     int    `json:"medium_severity"`
	LowSeverity        int    `json:"low_severity"`
	TotalDiscrepancies int    `json:"total_discrepancies"`
}

// Report is the verification outcome.
type Report struct {
	Summary           string        `json:"summary"`
	Discrepancies     []Discrepancy `json:"discrepancies"`
	OverallConfidence float64       `json:"overall_confidence"`
	ConfidenceBand    string        `json:"confidence_band"`
	Statistics        Statistics    `json:"statistics"`
}

// confidence folds the discrepancy list into one score. Each finding burns a
// fixed share of trust by severity; the floor is zero no matter how bad the
// list gets, and the result is rounded to two decimals.
func countBySeverity(discrepancies []Discrepancy) (high, medium, low int) {
	for _, d := range discrepancies {
		switch d.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		case SeverityLow:
			low++
		}
	}
	return high, medium, low
}

func confidence(discrepancies []Discrepancy) float64 {
	high, medium, low := countBySeverity(discrepancies)
	score := 1.0 - penaltyHigh*float64(high) - penaltyMedium*float64(medium) - penaltyLow*float64(low)
	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}

func confidenceBand(score float64) string {
	switch {
	case score >= 0.9:
		return "high"
	case score >= 0.7:
		return "good"
	case score >= 0.5:
		return "moderate"
	default:
		return "low"
	}
}

func summarize(score float64, discrepancies []Discrepancy) string {
	switch confidenceBand(score) {
	case "high":
		if len(discrepancies) == 0 {
			return "Résumé and reference profile are consistent."
		}
		return fmt.Sprintf("Résumé and reference profile are consistent apart from %d minor finding(s).", len(discrepancies))
	case "good":
		return fmt.Sprintf("Résumé largely matches the reference profile; %d finding(s) to review.", len(discrepancies))
	case "moderate":
		return fmt.Sprintf("Notable differences between résumé and reference profile; %d finding(s) need review.", len(discrepancies))
	default:
		return fmt.Sprintf("Résumé diverges significantly from the reference profile; %d finding(s) including serious ones.", len(discrepancies))
	}
}
