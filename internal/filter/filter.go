// Package filter classifies listings by title relevance, US/remote location
// and query match. Keyword tables are ordered configuration data; matching is
// "any rule wins" with exclusion taking precedence over inclusion.
package filter

import (
	"regexp"
	"strings"
)

// TitleFilter accepts titles containing a relevant keyword and rejects titles
// containing an excluded one. Exclusion is checked first. Long keywords match
// as substrings; short keywords (ux, ui) match as whole words only, so "ui"
// never matches inside "building".
type TitleFilter struct {
	relevant  []string
	excluded  []string
	wordRules []*regexp.Regexp
}

// NewTitleFilter builds a filter from keyword tables. words entries are
// compiled to whole-word patterns.
func NewTitleFilter(relevant, words, excluded []string) *TitleFilter {
	rules := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		rules = append(rules, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return &TitleFilter{relevant: relevant, excluded: excluded, wordRules: rules}
}

// Relevant reports whether the title passes the allow/deny classification.
func (f *TitleFilter) Relevant(title string) bool {
	lower := strings.ToLower(title)
	for _, ex := range f.excluded {
		if strings.Contains(lower, ex) {
			return false
		}
	}
	for _, kw := range f.relevant {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, re := range f.wordRules {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// usIndicators mark a location as US, remote or worldwide. The ", xx" entries
// match US state abbreviations after a comma ("Seattle, WA").
var usIndicators = []string{
	"united states", "usa", "u.s.", "us ",
	"remote", "anywhere", "worldwide", "global", "north america",
	", al", ", ak", ", az", ", ar", ", ca", ", co", ", ct", ", de",
	", fl", ", ga", ", hi", ", id", ", il", ", in", ", ia", ", ks",
	", ky", ", la", ", me", ", md", ", ma", ", mi", ", mn", ", ms",
	", mo", ", mt", ", ne", ", nv", ", nh", ", nj", ", nm", ", ny",
	", nc", ", nd", ", oh", ", ok", ", or", ", pa", ", ri", ", sc",
	", sd", ", tn", ", tx", ", ut", ", vt", ", va", ", wa", ", wv",
	", wi", ", wy", ", dc",
}

// nonUSNames reject a location outright when present and no US indicator hit.
var nonUSNames = []string{
	"romania", "germany", "india", "uk", "united kingdom", "canada",
	"brazil", "france", "spain", "italy", "netherlands", "australia",
	"poland", "portugal", "mexico", "argentina", "colombia", "chile",
	"japan", "china", "korea", "singapore", "israel", "turkey",
	"sweden", "norway", "denmark", "finland", "ireland", "austria",
	"switzerland", "belgium", "czech", "hungary", "ukraine", "russia",
	"philippines", "indonesia", "vietnam", "thailand", "malaysia",
	"south africa", "nigeria", "kenya", "egypt", "pakistan",
	"new zealand", "europe", "asia", "africa", "latin america",
	"emea", "apac",
}

// USLocation reports whether the location looks like US, remote or worldwide.
// Empty and unrecognized locations are kept: an unknown string could be a US
// city not in the indicator list, and silently dropping those is worse than
// letting a few foreign cities through.
func USLocation(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return true
	}
	for _, indicator := range usIndicators {
		if strings.Contains(loc, indicator) {
			return true
		}
	}
	for _, country := range nonUSNames {
		if strings.Contains(loc, country) {
			return false
		}
	}
	return true
}

// MatchesQuery reports whether text matches the query. Three tiers, first hit
// wins: the whole query as a contiguous substring with spaces and slashes
// collapsed (catches "ux/ui" vs "UX UI"), then any query word longer than two
// characters as a substring, then any 1-2 character word as an exact whole
// word. Short acronyms (ux, ui) must not false-positive on substrings.
func MatchesQuery(text, query string) bool {
	textLower := strings.ToLower(text)
	words := strings.Fields(strings.ToLower(query))

	collapsedQuery := strings.ReplaceAll(strings.ToLower(query), " ", "")
	collapsedText := strings.ReplaceAll(strings.ReplaceAll(textLower, " ", ""), "/", "")
	if collapsedQuery != "" && strings.Contains(collapsedText, collapsedQuery) {
		return true
	}

	var shortTerms []string
	for _, w := range words {
		if len(w) > 2 {
			if strings.Contains(textLower, w) {
				return true
			}
		} else {
			shortTerms = append(shortTerms, w)
		}
	}

	if len(shortTerms) > 0 {
		textWords := strings.Fields(textLower)
		for _, w := range shortTerms {
			for _, tw := range textWords {
				if w == tw {
					return true
				}
			}
		}
	}
	return false
}
