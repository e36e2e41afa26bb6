// Package score rates listings against the configured profile.
package score

import "strings"

// Scorer maps (title, description) to a relevance score. Each configured
// skill keyword found in the combined text adds 1, each target role found in
// the title adds 10, and at most one overqualified penalty is subtracted.
// The result may be negative.
type Scorer struct {
	Skills        []string
	Roles         []string
	Overqualified []string
	Penalty       int
}

// Score computes the relevance score for a listing.
func (s *Scorer) Score(title, description string) int {
	text := strings.ToLower(title + " " + description)
	score := 0
	for _, kw := range s.Skills {
		if strings.Contains(text, kw) {
			score++
		}
	}

	// Boost for exact role-title matches
	titleLower := strings.ToLower(title)
	for _, role := range s.Roles {
		if strings.Contains(titleLower, strings.ToLower(role)) {
			score += 10
		}
	}

	// One penalty max per job, however many seniority keywords match
	for _, kw := range s.Overqualified {
		if strings.Contains(titleLower, kw) {
			score -= s.Penalty
			break
		}
	}
	return score
}
