package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "The Cave", want: "The Cave"},
		{name: "trimmed", input: "  Austin \n", want: "Austin"},
		{name: "nul bytes", input: "Night\x00 Howl", want: "Night Howl"},
		{name: "invalid utf8", input: "Caf\xe9", want: "Caf"},
		{name: "only junk", input: " \x00\xff ", want: ""},
		{name: "unicode kept", input: "Zoë", want: "Zoë"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.input))
		})
	}
}
