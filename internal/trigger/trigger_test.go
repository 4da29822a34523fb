package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		triggers []string
		want     bool
	}{
		{
			name:     "case-insensitive match",
			message:  "CREATE A DASHBOARD",
			triggers: []string{"create"},
			want:     true,
		},
		{
			name:     "no relevant words",
			message:  "no relevant words",
			triggers: []string{"create"},
			want:     false,
		},
		{
			name:     "substring inside a sentence",
			message:  "could you please generate a pie chart for me",
			triggers: ArtifactTriggers,
			want:     true,
		},
		{
			name:     "multi-word trigger",
			message:  "I need a new database table for invoices",
			triggers: ScaffoldTriggers,
			want:     true,
		},
		{
			name:     "empty message",
			message:  "",
			triggers: ArtifactTriggers,
			want:     false,
		},
		{
			name:     "empty trigger list",
			message:  "create something",
			triggers: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.message, tt.triggers))
		})
	}
}

func TestVocabulariesAreLowercase(t *testing.T) {
	// Matches lowercases the message only, so triggers must already be
	// lowercase or they can never match.
	for _, trig := range append(append([]string{}, ArtifactTriggers...), ScaffoldTriggers...) {
		assert.Equal(t, trig, toLower(trig), "trigger %q must be lowercase", trig)
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
