package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner strips markup from source-supplied description text using
// Bluemonday before storage.
type Cleaner struct {
	policy *bluemonday.Policy
}

// New creates a cleaner that strips ALL HTML.
func New() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanToText removes all HTML and returns plain text.
func (c *Cleaner) CleanToText(html string) string {
	text := c.policy.Sanitize(html)

	// Clean up whitespace
	text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	text = strings.TrimSpace(text)

	return text
}

// Truncate caps s at n runes for storage economy.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
