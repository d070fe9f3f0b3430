package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]interface{}
	}{
		{
			name: "fenced",
			in:   "```json\n{\"a\":1}\n```",
			want: map[string]interface{}{"a": json.Number("1")},
		},
		{
			name: "fence marker is case insensitive",
			in:   "```JSON   {\"a\":\"b\"}```\n",
			want: map[string]interface{}{"a": "b"},
		},
		{
			name: "surrounding prose",
			in:   "noise {\"a\":1} trailing",
			want: map[string]interface{}{"a": json.Number("1")},
		},
		{
			name: "plain object",
			in:   "  {\"questions\":[]}  ",
			want: map[string]interface{}{"questions": []interface{}{}},
		},
		{
			name: "nested braces across lines",
			in:   "Here you go:\n{\n \"q\": {\"x\": [1, 2]}\n}\nEnjoy!",
			want: map[string]interface{}{"q": map[string]interface{}{"x": []interface{}{json.Number("1"), json.Number("2")}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONFailures(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not json at all",
		"```json\n```",
		"[1, 2, 3]",
		"null",
		// Truncated output is not repaired.
		"{\"questions\": [{\"id\": \"q1\"",
		// Greedy match spans both objects and is not valid JSON.
		"{\"a\":1} and {\"b\":2}",
	} {
		got, ok := ExtractJSON(in)
		assert.False(t, ok, "input %q", in)
		assert.Nil(t, got, "input %q", in)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "```\n{}", stripFences("```\n{}"))
	assert.Equal(t, "x", stripFences("  x  "))
}
