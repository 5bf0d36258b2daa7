package literal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteBareIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare constant", `{value: ALPHABET_OPTIONS}`, `{value: "ALPHABET_OPTIONS"}`},
		{"inside double quotes", `{"label": "USE_THIS"}`, `{"label": "USE_THIS"}`},
		{"inside single quotes", `['A_B', C_D]`, `['A_B', "C_D"]`},
		{"escaped quote in string", `['it\'s X', Y]`, `['it\'s X', "Y"]`},
		{"member access", `Math.PI`, `Math.PI`},
		{"mixed case", `Foo`, `Foo`},
		{"exponent", `1E5`, `1E5`},
		{"leading underscore", `[_X1]`, `["_X1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteBareIdentifiers(tt.in))
		})
	}
}

func TestToStrictLiteralIsIdentityOnJSON(t *testing.T) {
	inputs := []string{
		`{"a": [1, 2.5, -3, true, false, null, "x"]}`,
		`[{"name": "Alphabet", "type": "option", "value": ["A-Za-z0-9+/="]}]`,
		`{"pattern": "<[^>]+>", "escaped": "tab\tquote\"slash\\"}`,
		`[]`,
	}

	for _, in := range inputs {
		assert.Equal(t, in, ToStrictLiteral(in))
	}
}

func TestToStrictLiteralParses(t *testing.T) {
	src := `[
		{
			name: 'Alphabet',
			type: "editableOption",
			value: ALPHABET_OPTIONS, // shared list
		},
		{
			name: "Remove non-alphabet chars",
			type: 'boolean',
			value: true,
		},
		/* trailing */
	]`

	tree, ok := ParseLiteral(ToStrictLiteral(src))
	require.True(t, ok)

	seq, ok := tree.([]any)
	require.True(t, ok)
	require.Len(t, seq, 2)

	first := seq[0].(*Mapping)
	assert.Equal(t, []string{"name", "type", "value"}, first.Keys())
	v, _ := first.Get("value")
	assert.Equal(t, "ALPHABET_OPTIONS", v)

	second := seq[1].(*Mapping)
	v, _ = second.Get("value")
	assert.Equal(t, true, v)
}

func TestToStrictLiteralStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single quotes", `'abc'`, "abc"},
		{"escaped single quote", `'it\'s'`, "it's"},
		{"embedded double quote", `'say "hi"'`, `say "hi"`},
		{"template", "`plain`", "plain"},
		{"hex escape", `'\x41'`, "A"},
		{"utf-8 text", `"é"`, "é"},
		{"placeholder-looking text", `"KEEP_ME"`, "KEEP_ME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLiteral(ToStrictLiteral(tt.in))
			require.True(t, ok, "strict form: %s", ToStrictLiteral(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStrictLiteralRejectsCode(t *testing.T) {
	for _, in := range []string{
		`[new Foo()]`,
		`{value: Math.max(1, 2)}`,
		`[/abc/g]`,
		`{`,
	} {
		_, ok := ParseLiteral(ToStrictLiteral(in))
		assert.False(t, ok, in)
	}
}

func TestCoerceShapeNumericKeys(t *testing.T) {
	tree, ok := ParseLiteral(ToStrictLiteral(`{1: "one", two: 2,}`))
	require.True(t, ok)
	m := tree.(*Mapping)
	assert.Equal(t, []string{"1", "two"}, m.Keys())
	v, _ := m.Get("two")
	assert.Equal(t, json.Number("2"), v)
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "[1, \n 2   ]", StripComments("[1, // one\n 2 /* two */ ]"))
	assert.Equal(t, `["http://x"]`, StripComments(`["http://x"]`))
	assert.Equal(t, "[1", StripComments("[1/* open"))
}

func TestUnquoteJS(t *testing.T) {
	assert.Equal(t, "a\nb", UnquoteJS(`a\nb`))
	assert.Equal(t, "it's", UnquoteJS(`it\'s`))
	assert.Equal(t, "\v", UnquoteJS(`\v`))
	assert.Equal(t, `x\`, UnquoteJS(`x\`))
}
