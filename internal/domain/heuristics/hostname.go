package heuristics

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// schemePattern recognizes an explicit scheme: letters followed by ://
	schemePattern = regexp.MustCompile(`^[A-Za-z]+://`)

	// wellFormedPattern is the loose shape of a schemeful URL
	wellFormedPattern = regexp.MustCompile(`^[A-Za-z]+://[^\s"']+$`)

	// bareDomainPattern is the loose "token.token" shape of a schemeless domain
	bareDomainPattern = regexp.MustCompile(`^[^\s"']+\.[^\s"']+$`)
)

// extractTarget derives the lower-cased hostname and the parsed path+query
// from a raw URL candidate. Inputs without a scheme get a default http://
// prepended before parsing. ok is false when the input cannot be parsed as
// a URL or parses to an empty hostname.
//
// The path+query comes from the parsed URL's components, never from a
// textual split on the hostname: splitting breaks as soon as the hostname
// text recurs inside the path (e.g. http://example.com/go/example.com).
func extractTarget(rawURL string) (host, pathQuery string, ok bool) {
	candidate := rawURL
	if !schemePattern.MatchString(candidate) {
		candidate = "http://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", "", false
	}

	host = strings.ToLower(u.Hostname())
	if host == "" {
		return "", "", false
	}

	pathQuery = u.Path
	if u.RawQuery != "" {
		pathQuery += "?" + u.RawQuery
	}
	return host, pathQuery, true
}

// malformedFormat reports whether the raw string fails both recognizable
// URL shapes: "scheme://..." and bare "token.token".
func malformedFormat(rawURL string) bool {
	return !wellFormedPattern.MatchString(rawURL) && !bareDomainPattern.MatchString(rawURL)
}
