package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    `{"title":"Lunch"}`,
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n  {\"title\":\"Lunch\"}  \n",
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "json code fence",
			input:    "```json\n{\"title\":\"Lunch\"}\n```",
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "bare code fence",
			input:    "```\n{\"title\":\"Lunch\"}\n```",
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "leading and trailing prose",
			input:    "Here is the JSON you asked for:\n{\"title\":\"Lunch\"}\nLet me know if you need anything else.",
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "prose around a fenced block",
			input:    "Sure!\n```json\n{\"title\":\"Lunch\"}\n```\nHope that helps.",
			expected: `{"title":"Lunch"}`,
		},
		{
			name:     "nested braces kept intact",
			input:    "prefix {\"a\":{\"b\":1}} suffix",
			expected: `{"a":{"b":1}}`,
		},
		{
			name:     "no braces returns trimmed input",
			input:    "  not json at all  ",
			expected: "not json at all",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSON(tt.input))
		})
	}
}

func TestCleanJSONIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"title\":\"Lunch\"}\n```",
		"prose before {\"a\":1} prose after",
		`{"a":1}`,
		"no json here",
	}

	for _, input := range inputs {
		once := CleanJSON(input)
		assert.Equal(t, once, CleanJSON(once), "sanitizing twice must equal sanitizing once for %q", input)
	}
}
