package heuristics

import (
	"strings"

	"github.com/vetsec/url-security/internal/domain"
)

// Engine scores URL candidates against a fixed battery of lexical rules
//
// The Engine walks the rule table in battery, each entry responsible for one
// independent fraud signal (raw IP hostnames, typosquatting, keyword bait,
// etc.), and maps the accumulated score onto a verdict.
//
// Keeping the rules declarative provides:
//   - Modularity: each signal is developed and tested in isolation
//   - Extensibility: a new signal is one more table entry
//   - Auditability: weights live next to the checks they price
//
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	lists Lists
}

// NewEngine creates an engine around the given reference lists
//
// The lists are normalized once here so rules can assume lower-case entries
// and dot-prefixed TLDs.
func NewEngine(lists Lists) *Engine {
	return &Engine{lists: lists.Normalized()}
}

// Analyze classifies one raw URL string
//
// Analysis is total and deterministic: every input, the empty string
// included, maps to exactly one result, and the same input always maps to
// the same result. There is no error path.
//
// The format check and hostname extraction run before the battery. A URL
// whose hostname cannot be parsed is categorically fraudulent: the failure
// contributes its own weight and reason, forces the Fraudulent verdict
// regardless of the score thresholds, and skips the battery entirely.
func (e *Engine) Analyze(rawURL string) domain.AnalysisResult {
	score := 0
	reasons := make([]string, 0)

	// Shape check on the raw string. It applies even when hostname
	// extraction fails below.
	if malformedFormat(rawURL) {
		reasons = append(reasons, reasonMalformed)
		score += malformedWeight
	}

	host, pathQuery, ok := extractTarget(rawURL)
	if !ok {
		reasons = append(reasons, reasonNoHostname)
		score += noHostnameWeight
		return domain.AnalysisResult{
			Score:   score,
			Verdict: domain.VerdictFraudulent,
			Reasons: reasons,
		}
	}

	t := &target{
		raw:       rawURL,
		lowerRaw:  strings.ToLower(rawURL),
		host:      host,
		pathQuery: pathQuery,
		lists:     e.lists,
	}

	// Every reason a rule reports is worth that rule's weight
	for _, r := range battery {
		for _, reason := range r.detect(t) {
			reasons = append(reasons, reason)
			score += r.weight
		}
	}

	return domain.AnalysisResult{
		Score:   score,
		Verdict: domain.VerdictOf(score),
		Reasons: reasons,
	}
}
