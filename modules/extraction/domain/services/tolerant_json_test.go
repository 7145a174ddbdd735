package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	ActionItems []string `json:"action_items"`
	Summary     string   `json:"summary"`
}

func TestDecodeTolerantJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    decodeTarget
		wantErr bool
	}{
		{
			name: "clean strict json",
			raw:  `{"action_items": ["call bob"], "summary": "short meeting"}`,
			want: decodeTarget{ActionItems: []string{"call bob"}, Summary: "short meeting"},
		},
		{
			name: "fenced with json tag",
			raw:  "```json\n{\"action_items\": [\"call bob\"], \"summary\": \"short meeting\"}\n```",
			want: decodeTarget{ActionItems: []string{"call bob"}, Summary: "short meeting"},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"action_items\": [], \"summary\": \"ok\"}\n```",
			want: decodeTarget{ActionItems: []string{}, Summary: "ok"},
		},
		{
			name: "prose surrounding the object",
			raw:  `Sure, here is the JSON you asked for: {"action_items": [], "summary": "ok"} Let me know if you need anything else.`,
			want: decodeTarget{ActionItems: []string{}, Summary: "ok"},
		},
		{
			name: "trailing comma before closing brace",
			raw:  `{"action_items": [], "summary": "ok",}`,
			want: decodeTarget{ActionItems: []string{}, Summary: "ok"},
		},
		{
			name: "trailing comma inside array",
			raw:  `{"action_items": ["a", "b",], "summary": "ok"}`,
			want: decodeTarget{ActionItems: []string{"a", "b"}, Summary: "ok"},
		},
		{
			name:    "no balanced object anywhere",
			raw:     "no json here at all",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			raw:     `{"summary": "ok"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got decodeTarget
			err := DecodeTolerantJSON(tt.raw, &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
