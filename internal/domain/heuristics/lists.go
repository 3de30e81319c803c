package heuristics

import "strings"

// Lists holds the reference data the scoring rules consult
//
// The engine treats every list as immutable input: swapping lists swaps
// behavior without any engine-logic change. Callers that want different
// anchors, TLDs or keywords pass their own copy instead of mutating
// package state.
type Lists struct {
	// PopularDomains are registrable domains used as typosquat anchors
	// (e.g. "google.com")
	PopularDomains []string

	// SuspiciousTLDs are top-level-domain suffixes with a leading dot
	// (e.g. ".xyz") that frequently host throwaway fraud sites
	SuspiciousTLDs []string

	// FraudKeywords are case-insensitive substrings whose presence anywhere
	// in a URL raises suspicion (e.g. "login")
	FraudKeywords []string
}

// DefaultLists returns the compiled-in reference data
//
// The defaults are a starting point, not a threat feed: deployments with
// their own intelligence should supply lists via configuration.
func DefaultLists() Lists {
	return Lists{
		PopularDomains: []string{
			"google.com", "youtube.com", "facebook.com", "instagram.com",
			"twitter.com", "wikipedia.org", "amazon.com", "apple.com",
			"microsoft.com", "netflix.com", "linkedin.com", "paypal.com",
			"ebay.com", "reddit.com", "github.com", "dropbox.com",
			"adobe.com", "whatsapp.com", "tiktok.com", "office.com",
		},
		SuspiciousTLDs: []string{
			".tk", ".ml", ".ga", ".cf", ".gq", ".xyz",
			".top", ".icu", ".click", ".link", ".buzz", ".work",
		},
		FraudKeywords: []string{
			"login", "verify", "secure", "account", "update", "banking",
			"signin", "confirm", "password", "billing", "wallet", "invoice",
			"payment", "bonus", "prize", "winner", "urgent", "suspended",
		},
	}
}

// Normalized returns a copy with every entry trimmed, lower-cased and
// de-blanked, and every TLD carrying its leading dot. Engine construction
// applies this once so the rules can compare without re-cleaning.
func (l Lists) Normalized() Lists {
	out := Lists{
		PopularDomains: cleanEntries(l.PopularDomains, false),
		SuspiciousTLDs: cleanEntries(l.SuspiciousTLDs, true),
		FraudKeywords:  cleanEntries(l.FraudKeywords, false),
	}
	return out
}

func cleanEntries(entries []string, leadingDot bool) []string {
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if leadingDot && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		cleaned = append(cleaned, e)
	}
	return cleaned
}
