package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListsNormalized(t *testing.T) {
	lists := Lists{
		PopularDomains: []string{" Google.COM ", "", "  "},
		SuspiciousTLDs: []string{"XYZ", ".top", " "},
		FraudKeywords:  []string{" LOGIN", "verify ", ""},
	}.Normalized()

	assert.Equal(t, []string{"google.com"}, lists.PopularDomains)
	assert.Equal(t, []string{".xyz", ".top"}, lists.SuspiciousTLDs)
	assert.Equal(t, []string{"login", "verify"}, lists.FraudKeywords)
}

func TestDefaultLists(t *testing.T) {
	lists := DefaultLists()

	assert.Contains(t, lists.PopularDomains, "google.com")
	assert.Contains(t, lists.SuspiciousTLDs, ".xyz")
	assert.Contains(t, lists.FraudKeywords, "login")
	assert.Contains(t, lists.FraudKeywords, "secure")

	// Defaults are already in normalized form
	assert.Equal(t, lists, lists.Normalized())
}
