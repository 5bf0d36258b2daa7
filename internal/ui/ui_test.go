package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
	"github.com/christianwengert/mcp-cyberchef/internal/extract"
	"github.com/christianwengert/mcp-cyberchef/internal/resolve"
)

func strPtr(s string) *string { return &s }

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"zero width", "a b c", 0, "a b c"},
		{"fits", "short", 20, "short"},
		{"words", "one two three four", 9, "one two\nthree\nfour"},
		{"paragraphs", "one two\n\nthree four", 7, "one two\n\nthree\nfour"},
		{"trims lines", "  padded  ", 20, "padded"},
		{"long word", "abcdefghij", 4, "abcd\nefgh\nij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel...", Truncate("hello world", 6))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "héll...", Truncate("héllo wörld", 7))
}

func TestRenderOperations(t *testing.T) {
	ops := []*catalog.Operation{
		{
			Name:        "From Base64",
			Module:      strPtr("Default"),
			Description: strPtr("Base64 is a notation for encoding arbitrary byte data.<br><br>More detail."),
			InputType:   strPtr("string"),
			OutputType:  strPtr("byteArray"),
			Args:        []catalog.ArgumentSpec{{Name: "Alphabet", Type: catalog.TypeEnum}},
		},
		{Name: "Reverse"},
	}

	var buf bytes.Buffer
	RenderOperations(&buf, ops, 30)
	out := buf.String()

	assert.Contains(t, out, "From Base64")
	assert.Contains(t, out, "string → byteArray")
	assert.Contains(t, out, "Reverse")
	assert.Contains(t, out, "? → ?")
	assert.NotContains(t, out, "More detail")
}

func TestRenderOperationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderOperations(&buf, nil, 0)
	assert.Contains(t, buf.String(), "No operations found")
}

func TestRenderArguments(t *testing.T) {
	op := &catalog.Operation{
		Name:    "XOR",
		InfoURL: strPtr("https://wikipedia.org/wiki/XOR"),
		Args: []catalog.ArgumentSpec{
			{Name: "Key", Type: catalog.TypeBytes, Encodings: catalog.Encodings()},
			{Name: "Scheme", Type: catalog.TypeEnum, Options: []any{"Standard", "Cascade"}},
			{Name: "Format", Type: catalog.TypeEnum, Options: "FORMATS"},
		},
	}

	var buf bytes.Buffer
	RenderArguments(&buf, op)
	out := buf.String()

	assert.Contains(t, out, "https://wikipedia.org/wiki/XOR")
	assert.Contains(t, out, "encodings: hex, utf8, latin1, base64")
	assert.Contains(t, out, "options: Standard, Cascade")
	assert.Contains(t, out, "FORMATS (unresolved)")
}

func TestRenderSummary(t *testing.T) {
	c := catalog.New()
	c.Put(&catalog.Operation{Name: "From Base64"})

	result := &extract.Result{
		Catalog:      c,
		Files:        3,
		Skipped:      []string{"Helper.mjs", "Unnamed.mjs"},
		Duplicates:   []string{"From Base64"},
		UnknownTypes: []string{"shiftAmount"},
		Diagnostics: []resolve.Diagnostic{
			{Symbol: "FORMATS", Path: "/lib/Missing.mjs", Reason: "no such file"},
		},
	}

	out := RenderSummary(result, "operations.json")
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Contains(t, lines[0], "Extracted 1 operations from 3 files")
	assert.Contains(t, out, "Catalog written to operations.json")
	assert.Contains(t, out, "Skipped 2 files")
	assert.Contains(t, out, "shiftAmount")
	assert.Contains(t, out, "1 unresolved symbols:")
	assert.Contains(t, out, "FORMATS (/lib/Missing.mjs): no such file")
}
