package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Verdict is the three-level classification of a URL
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictFraudulent Verdict = "fraudulent"
)

// severityRank orders verdicts from least to most severe
var severityRank = map[Verdict]int{
	VerdictSafe:       0,
	VerdictSuspicious: 1,
	VerdictFraudulent: 2,
}

// Severity returns the verdict's position in the safe < suspicious < fraudulent order
func (v Verdict) Severity() int {
	return severityRank[v]
}

// ParseVerdict converts user-supplied text into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	switch Verdict(strings.ToLower(strings.TrimSpace(s))) {
	case VerdictSafe:
		return VerdictSafe, nil
	case VerdictSuspicious:
		return VerdictSuspicious, nil
	case VerdictFraudulent:
		return VerdictFraudulent, nil
	default:
		return "", fmt.Errorf("unknown verdict %q (want safe, suspicious or fraudulent)", s)
	}
}

// AnalysisResult is the outcome of running the heuristic engine on one URL
//
// Score is the sum of the weights of all reasons present in Reasons.
// Reasons follow rule evaluation order and are stable and reproducible
// for identical input. Verdict is a pure function of Score, except for
// the hostname-parse-failure path which forces Fraudulent directly.
type AnalysisResult struct {
	Score   int      `json:"score"`
	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons"`
}

// AnalysisRecord is a persisted analysis: the input URL plus its result
type AnalysisRecord struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	Score      int       `json:"score"`
	Verdict    Verdict   `json:"verdict"`
	Reasons    []string  `json:"reasons"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Result returns the record's embedded engine output
func (r AnalysisRecord) Result() AnalysisResult {
	return AnalysisResult{Score: r.Score, Verdict: r.Verdict, Reasons: r.Reasons}
}

// VerdictOf converts an accumulated heuristic score to a categorical verdict
func VerdictOf(score int) Verdict {
	switch {
	case score >= 8:
		return VerdictFraudulent
	case score >= 4:
		return VerdictSuspicious
	default:
		return VerdictSafe
	}
}
