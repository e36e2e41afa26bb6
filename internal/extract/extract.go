// Package extract pulls secondary signals (application deadline, required
// experience level) out of free-form job description text using ordered
// pattern rules. Rules are data: the first matching rule wins, so order
// matters on overlapping matches.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// deadlineRules are tried in order against raw text; the first capture group
// of the first match is returned.
var deadlineRules = []*regexp.Regexp{
	// "close on: 02/20/2026" / "close on: February 20, 2026"
	regexp.MustCompile(`(?i)(?:apply|application|deadline|closes?|closing|due|window)\s+(?:\w+\s+){0,4}(?:by|before|on|date)[:\s]+\s*([A-Za-z]+\.?\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)(?:apply|application|deadline|closes?|closing|due|window)\s+(?:\w+\s+){0,4}(?:by|before|on|date)[:\s]+\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	// "application deadline: Feb 20, 2026"
	regexp.MustCompile(`(?i)(?:application\s+(?:deadline|window)|closing\s+date|apply\s+by|posted\s+until)[:\s]+([A-Za-z]+\.?\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)(?:application\s+(?:deadline|window)|closing\s+date|apply\s+by|posted\s+until)[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	// "expected to close on: 02/20/2026"
	regexp.MustCompile(`(?i)expected\s+to\s+close\s+on[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`(?i)expected\s+to\s+close\s+on[:\s]+([A-Za-z]+\.?\s+\d{1,2},?\s+\d{4})`),
}

// Deadline tries to find an application deadline in job description text.
// Returns "" when no rule matches.
func Deadline(text string) string {
	for _, re := range deadlineRules {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

type experienceRule struct {
	re     *regexp.Regexp
	format func(m []string) string
}

// experienceRules are tried in order against lower-cased text. The numeric
// "N+ years experience" rule outranks the qualitative bands.
var experienceRules = []experienceRule{
	{
		re:     regexp.MustCompile(`(\d+)\+?\s*(?:to\s*\d+)?\s*years?\s+(?:of\s+)?experience`),
		format: func(m []string) string { return fmt.Sprintf("%s+ yrs", m[1]) },
	},
	{
		re:     regexp.MustCompile(`entry[\s-]level`),
		format: func([]string) string { return "Entry Level" },
	},
	{
		re:     regexp.MustCompile(`mid[\s-]level`),
		format: func([]string) string { return "Mid Level" },
	},
	{
		re:     regexp.MustCompile(`senior|sr\.`),
		format: func([]string) string { return "Senior" },
	},
	{
		re:     regexp.MustCompile(`principal|staff|lead`),
		format: func([]string) string { return "Principal/Staff" },
	},
	{
		re:     regexp.MustCompile(`junior|jr\.`),
		format: func([]string) string { return "Junior" },
	},
}

// Experience tries to extract the required experience level from job text.
// Returns "" when no rule matches.
func Experience(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range experienceRules {
		if m := rule.re.FindStringSubmatch(lower); m != nil {
			return rule.format(m)
		}
	}
	return ""
}
