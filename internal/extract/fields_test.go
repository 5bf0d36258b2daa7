package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

func TestExtractScalarField(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		field  string
		want   string
		wantOK bool
	}{
		{"double quoted", `this.name = "From Base64";`, "name", "From Base64", true},
		{"single quoted", `this.module = 'Default';`, "module", "Default", true},
		{"no semicolon", "this.inputType = \"string\"\n this.outputType = \"byteArray\"", "inputType", "string", true},
		{"escaped quote", `this.description = "Say \"hi\"";`, "description", `Say "hi"`, true},
		{"concatenation", "this.description = \"Base64 is \" +\n    'a notation';", "description", "Base64 is a notation", true},
		{"template", "this.description = `plain\ntemplate`;", "description", "plain\ntemplate", true},
		{"template with substitution", "this.description = `hello ${name}`;", "description", "", false},
		{"null", `this.infoURL = null;`, "infoURL", "", false},
		{"expression", `this.name = NAME.toUpperCase();`, "name", "", false},
		{"method call on literal", `this.name = "abc".toUpperCase();`, "name", "", false},
		{"missing", `this.name = "x";`, "module", "", false},
		{"prefix field", `this.names = "x";`, "name", "", false},
		{"comparison", `if (this.name == "x") {}`, "name", "", false},
		{"not this", `that.this.name = "x";`, "name", "", false},
		{"later literal wins over expression", "this.name = build();\nthis.name = \"Later\";", "name", "Later", true},
		{"unicode escape", `this.name = "café";`, "name", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractScalarField(tt.body, tt.field)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractArrayField(t *testing.T) {
	body := `
        this.args = [
            {
                name: "Alphabet",
                type: "editableOption",
                value: ALPHABET_OPTIONS // shared with To Base64
            },
            {
                "name": 'Remove non-alphabet chars',
                "type": "boolean",
                "value": true,
            },
        ];
        this.checks = [];`

	args, ok := ExtractArrayField(body, "args")
	require.True(t, ok)
	require.Len(t, args, 2)

	first, ok := args[0].(*literal.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "type", "value"}, first.Keys())
	value, _ := first.Get("value")
	assert.Equal(t, "ALPHABET_OPTIONS", value)

	second := args[1].(*literal.Mapping)
	flag, _ := second.Get("value")
	assert.Equal(t, true, flag)

	checks, ok := ExtractArrayField(body, "checks")
	require.True(t, ok)
	assert.Empty(t, checks)
}

func TestExtractArrayFieldNumbers(t *testing.T) {
	args, ok := ExtractArrayField(`this.args = [{name: "Width", type: "number", value: 8, min: -1.5}];`, "args")
	require.True(t, ok)

	m := args[0].(*literal.Mapping)
	v, _ := m.Get("value")
	assert.Equal(t, json.Number("8"), v)
	min, _ := m.Get("min")
	assert.Equal(t, json.Number("-1.5"), min)
}

func TestExtractArrayFieldRejects(t *testing.T) {
	tests := map[string]string{
		"missing":     `this.name = "x";`,
		"unbalanced":  `this.args = [{name: "x"`,
		"computed":    `this.args = [new Option("x")];`,
		"not literal": `this.args = buildArgs();`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := ExtractArrayField(body, "args")
			assert.False(t, ok)
		})
	}
}
