package heuristics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// target is the pre-parsed view of one URL candidate that rules inspect
type target struct {
	raw       string // original input, untouched
	lowerRaw  string // lower-cased input for case-insensitive scans
	host      string // lower-cased hostname
	pathQuery string // parsed path plus ?query when a query is present
	lists     Lists  // normalized reference lists
}

// rule is one independent scoring check: a named predicate over the target
// producing zero or more reasons, each worth the rule's weight
//
// Rules are stateless and side-effect-free. Their evaluation order fixes
// the order of the reason list but never the total score, since each rule
// contributes independently of the others.
type rule struct {
	name   string
	weight int
	detect func(t *target) []string
}

// battery is the ordered rule table evaluated by Engine.Analyze
var battery = []rule{
	{name: "raw-ip-hostname", weight: 5, detect: detectRawIP},
	{name: "long-url", weight: 2, detect: detectLongURL},
	{name: "long-hostname", weight: 2, detect: detectLongHostname},
	{name: "subdomain-depth", weight: 2, detect: detectSubdomainDepth},
	{name: "suspicious-tld", weight: 3, detect: detectSuspiciousTLD},
	{name: "percent-encoding", weight: 1, detect: detectPercentEncoding},
	{name: "at-sign", weight: 4, detect: detectAtSign},
	{name: "hyphenated-hostname", weight: 1, detect: detectHyphens},
	{name: "digit-heavy-hostname", weight: 1, detect: detectDigits},
	{name: "fraud-keywords", weight: 2, detect: detectFraudKeywords},
	{name: "typosquat", weight: 4, detect: detectTyposquat},
	{name: "long-path", weight: 1, detect: detectLongPath},
	{name: "query-parameter-flood", weight: 1, detect: detectParamFlood},
}

// Weights of the two checks that run outside the battery
const (
	malformedWeight  = 1
	noHostnameWeight = 3
)

var (
	ipv4Pattern    = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	percentEncoded = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
	nonHostChars   = regexp.MustCompile(`[^\w.]`)
	digitSwaps     = strings.NewReplacer("0", "o", "1", "l", "3", "e")
)

const (
	reasonMalformed    = `URL matches neither "scheme://..." nor a bare domain shape`
	reasonNoHostname   = "hostname could not be parsed from the URL"
	reasonRawIP        = "hostname is a raw IP address instead of a domain name"
	reasonLongURL      = "URL is unusually long (over 100 characters)"
	reasonLongHostname = "hostname is unusually long (over 50 characters)"
	reasonSubdomains   = "hostname is nested under multiple subdomain levels"
	reasonPercent      = "URL contains percent-encoded bytes"
	reasonAtSign       = "URL contains an '@' sign, which can disguise the real destination"
	reasonHyphens      = "hostname contains multiple hyphens"
	reasonDigits       = "hostname relies on several digits, a common look-alike trick"
	reasonLongPath     = "path and query are unusually long (over 80 characters)"
	reasonParamFlood   = "URL carries an excessive number of query parameters"
)

func reasonSuspiciousTLD(tld string) string {
	return fmt.Sprintf("hostname uses the frequently-abused top-level domain %q", tld)
}

func reasonKeyword(keyword string) string {
	return fmt.Sprintf("URL contains the fraud keyword %q", keyword)
}

func reasonTyposquat(domain string) string {
	return fmt.Sprintf("hostname closely resembles the popular domain %q", domain)
}

func detectRawIP(t *target) []string {
	if ipv4Pattern.MatchString(t.host) {
		return []string{reasonRawIP}
	}
	return nil
}

func detectLongURL(t *target) []string {
	if utf8.RuneCountInString(t.raw) > 100 {
		return []string{reasonLongURL}
	}
	return nil
}

func detectLongHostname(t *target) []string {
	if utf8.RuneCountInString(t.host) > 50 {
		return []string{reasonLongHostname}
	}
	return nil
}

func detectSubdomainDepth(t *target) []string {
	// Label depth only means something for domain names; a raw IPv4
	// hostname always has four dot-separated groups and is already
	// claimed by the raw-ip rule.
	if ipv4Pattern.MatchString(t.host) {
		return nil
	}
	if len(strings.Split(t.host, ".")) >= 4 {
		return []string{reasonSubdomains}
	}
	return nil
}

// detectSuspiciousTLD contributes at most once, for the first matching suffix
func detectSuspiciousTLD(t *target) []string {
	for _, tld := range t.lists.SuspiciousTLDs {
		if strings.HasSuffix(t.host, tld) {
			return []string{reasonSuspiciousTLD(tld)}
		}
	}
	return nil
}

func detectPercentEncoding(t *target) []string {
	if percentEncoded.MatchString(t.raw) {
		return []string{reasonPercent}
	}
	return nil
}

func detectAtSign(t *target) []string {
	if strings.Contains(t.raw, "@") {
		return []string{reasonAtSign}
	}
	return nil
}

func detectHyphens(t *target) []string {
	if strings.Count(t.host, "-") >= 2 {
		return []string{reasonHyphens}
	}
	return nil
}

func detectDigits(t *target) []string {
	// Digits in a raw IPv4 hostname are not a disguise, they are the address.
	if ipv4Pattern.MatchString(t.host) {
		return nil
	}

	digits := 0
	for _, r := range t.host {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits >= 3 {
		return []string{reasonDigits}
	}
	return nil
}

// detectFraudKeywords scans the full URL, not just the hostname: fraud pages
// hide their bait in paths and query strings as often as in domains. Each
// configured keyword contributes at most one reason per analysis no matter
// how often it recurs, but distinct keywords accumulate, including ones that
// overlap inside the same stretch of text (cumulative suspicion).
func detectFraudKeywords(t *target) []string {
	var reasons []string
	for _, kw := range t.lists.FraudKeywords {
		if strings.Contains(t.lowerRaw, kw) {
			reasons = append(reasons, reasonKeyword(kw))
		}
	}
	return reasons
}

// detectTyposquat compares the normalized hostname against each popular
// domain and fires on the first one within edit distance, relative to the
// longer of the two names, of 25%. A hostname that normalizes to exactly a
// popular domain is that domain, not an imitation, and never matches.
func detectTyposquat(t *target) []string {
	normalized := normalizeHostname(t.host)
	for _, pd := range t.lists.PopularDomains {
		if normalized == pd {
			continue
		}
		longest := max(utf8.RuneCountInString(normalized), utf8.RuneCountInString(pd))
		if longest == 0 {
			continue
		}
		distance := EditDistance(normalized, pd)
		if float64(distance)/float64(longest) <= 0.25 {
			return []string{reasonTyposquat(pd)}
		}
	}
	return nil
}

// normalizeHostname undoes the cheapest look-alike tricks before the
// edit-distance comparison: the common digit substitutions (0 for o, 1 for l,
// 3 for e), then everything that is not a word character or a dot.
func normalizeHostname(host string) string {
	return nonHostChars.ReplaceAllString(digitSwaps.Replace(host), "")
}

func detectLongPath(t *target) []string {
	if utf8.RuneCountInString(t.pathQuery) > 80 {
		return []string{reasonLongPath}
	}
	return nil
}

func detectParamFlood(t *target) []string {
	if strings.Count(t.pathQuery, "?")+strings.Count(t.pathQuery, "&") >= 5 {
		return []string{reasonParamFlood}
	}
	return nil
}
