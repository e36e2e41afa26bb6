package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobIDFlagSetTrailingFlags(t *testing.T) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	notes := fs.String("notes", "", "")

	id := parseJobIDFlagSet(fs, []string{"7", "-notes", "emailed recruiter"})
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "emailed recruiter", *notes)
}

// Flags after the positional id and status must still be parsed, same as the
// apply command.
func TestParseStatusFlagSetTrailingFlags(t *testing.T) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	notes := fs.String("notes", "", "")

	id, status := parseStatusFlagSet(fs, []string{"5", "applied", "-notes", "sent portfolio"})
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "applied", status)
	assert.Equal(t, "sent portfolio", *notes)
}

func TestParseStatusFlagSetNoFlags(t *testing.T) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.String("notes", "", "")

	id, status := parseStatusFlagSet(fs, []string{"12", "rejected"})
	assert.Equal(t, int64(12), id)
	assert.Equal(t, "rejected", status)
}
