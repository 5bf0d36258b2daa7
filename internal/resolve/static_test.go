package resolve

import (
	"encoding/json"
	"testing"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExportedArray(t *testing.T) {
	source := `
import Utils from "../Utils.mjs";

export const OTHER = ["x"];

/**
 * Delimiters.
 */
export const DELIM_OPTIONS = [
    "Space", "Comma", // common
    'Semi-colon',
    {name: "Line feed", value: "\n"},
    NESTED_CONST,
];

export function unrelated() { return [Utils.x]; }
`

	seq, ok := ExtractExportedArray(source, "DELIM_OPTIONS")
	require.True(t, ok)
	require.Len(t, seq, 5)
	assert.Equal(t, []any{"Space", "Comma", "Semi-colon"}, seq[:3])
	assert.Equal(t, "NESTED_CONST", seq[4])

	lf := seq[3].(*literal.Mapping)
	v, _ := lf.Get("value")
	assert.Equal(t, "\n", v)

	seq, ok = ExtractExportedArray(source, "OTHER")
	require.True(t, ok)
	assert.Equal(t, []any{"x"}, seq)
}

func TestExtractExportedArrayRejects(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing", `export const A = [1];`},
		{"not an array", `export const B = {a: 1};`},
		{"computed", `export const B = [Math.max(1, 2)];`},
		{"unbalanced", `export const B = [1, [2];`},
		{"prefix only", `export const BB = [1];`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractExportedArray(tt.source, "B")
			assert.False(t, ok)
		})
	}
}

func TestExtractExportedArrayNumbers(t *testing.T) {
	seq, ok := ExtractExportedArray("export let B = [1, 2.5, -3];", "B")
	require.True(t, ok)
	assert.Equal(t, []any{json.Number("1"), json.Number("2.5"), json.Number("-3")}, seq)
}
