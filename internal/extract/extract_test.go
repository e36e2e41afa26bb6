package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeadline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "close on numeric date",
			text: "This posting is expected to close on: 02/20/2026.",
			want: "02/20/2026",
		},
		{
			name: "application deadline with month name",
			text: "Application deadline: March 15, 2026. Apply early.",
			want: "March 15, 2026",
		},
		{
			name: "apply by",
			text: "Please apply by January 5, 2026 to be considered.",
			want: "January 5, 2026",
		},
		{
			name: "applications close on",
			text: "Applications close on 02/20/2026",
			want: "02/20/2026",
		},
		{
			name: "no deadline",
			text: "We review applications on a rolling basis.",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Deadline(tt.text))
		})
	}
}

func TestExperience(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "numeric years",
			text: "We need 5+ years of experience with Figma",
			want: "5+ yrs",
		},
		{
			name: "range collapses to lower bound",
			text: "3 to 5 years experience required",
			want: "3+ yrs",
		},
		{
			name: "entry level",
			text: "This is an entry-level position",
			want: "Entry Level",
		},
		{
			name: "senior band",
			text: "Senior Designer wanted",
			want: "Senior",
		},
		{
			name: "numeric beats qualitative",
			text: "Senior role, 7 years of experience expected",
			want: "7+ yrs",
		},
		{
			name: "staff band",
			text: "Staff Designer",
			want: "Principal/Staff",
		},
		{
			name: "no signal",
			text: "Join our design team",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Experience(tt.text))
		})
	}
}
