package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name    string `json:"Name"`
		Company string `json:"Company"`
	}

	tests := []struct {
		name    string
		content string
		want    payload
		wantErr bool
	}{
		{
			name:    "plain object",
			content: `{"Name":"Priya","Company":"Acme"}`,
			want:    payload{Name: "Priya", Company: "Acme"},
		},
		{
			name:    "fenced with language tag",
			content: "```json\n{\"Name\":\"Priya\",\"Company\":\"Acme\"}\n```",
			want:    payload{Name: "Priya", Company: "Acme"},
		},
		{
			name:    "fenced without tag",
			content: "```\n{\"Name\":\"Priya\"}\n```",
			want:    payload{Name: "Priya"},
		},
		{
			name:    "prose around object",
			content: "Here is the extracted data:\n{\"Name\": \"Priya\", \"Company\": \"Acme\"}\nLet me know!",
			want:    payload{Name: "Priya", Company: "Acme"},
		},
		{
			name:    "object followed by note",
			content: "{\"Name\":\"Jane Doe\",\"Company\":\"Acme\"}\n\nNote: the address was inferred.",
			want:    payload{Name: "Jane Doe", Company: "Acme"},
		},
		{
			name:    "fenced object followed by note",
			content: "```json\n{\"Name\":\"Jane Doe\"}\n```\nNote: {approximate}",
			want:    payload{Name: "Jane Doe"},
		},
		{
			name:    "empty",
			content: "   ",
			wantErr: true,
		},
		{
			name:    "no json",
			content: "I could not read the card.",
			wantErr: true,
		},
		{
			name:    "broken json",
			content: "{\"Name\": \"Priya\",",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := DecodeJSON(tt.content, &got)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnippetTruncates(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}

	got := snippet(string(long))
	assert.Len(t, got, snippetLimit+3)
}

func TestSnippetKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("x", snippetLimit-1) + "é" + strings.Repeat("y", 20)

	got := snippet(s)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", snippetLimit-1)+"é...", got)
}
