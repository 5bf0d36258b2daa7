package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationOperation() *Operation {
	return &Operation{
		Name: "Example",
		Args: []ArgumentSpec{
			{Name: "Alphabet", Type: TypeEnum, Options: []any{"Standard", "URL safe"}},
			{Name: "Width", Type: TypeInteger, Min: json.Number("1"), Max: json.Number("64")},
			{Name: "Ratio", Type: TypeNumber, Required: true},
			{Name: "Label", Type: TypeString},
			{Name: "Strict", Type: TypeBoolean},
			{Name: "Key", Type: TypeBytes, Encodings: Encodings()},
			{Name: "Shift", Type: "shiftAmount"},
		},
	}
}

func TestValidateArgsAccepts(t *testing.T) {
	op := validationOperation()

	err := op.ValidateArgs(map[string]any{
		"Alphabet": "URL safe",
		"Width":    json.Number("8"),
		"Ratio":    0.5,
		"Label":    "x",
		"Strict":   true,
		"Key":      map[string]any{"value": "deadbeef", "encoding": "hex"},
		"Shift":    []any{1, 2},
	})
	assert.NoError(t, err)

	assert.NoError(t, op.ValidateArgs(map[string]any{"Ratio": 1.0, "Key": "plain"}))
}

func TestValidateArgsRejects(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		message string
	}{
		{"unknown", map[string]any{"Ratio": 1.0, "Zeta": 1, "Alpha": 2}, `unknown args ["Alpha" "Zeta"]`},
		{"missing required", map[string]any{}, `missing required arg "Ratio"`},
		{"enum value", map[string]any{"Ratio": 1.0, "Alphabet": "Other"}, "Alphabet must be one of"},
		{"enum type", map[string]any{"Ratio": 1.0, "Alphabet": 3.0}, "Alphabet must be one of"},
		{"number type", map[string]any{"Ratio": "1"}, "Ratio must be a number"},
		{"integer", map[string]any{"Ratio": 1.0, "Width": 2.5}, "Width must be an integer"},
		{"below min", map[string]any{"Ratio": 1.0, "Width": json.Number("0")}, "Width < 1"},
		{"above max", map[string]any{"Ratio": 1.0, "Width": 65.0}, "Width > 64"},
		{"string", map[string]any{"Ratio": 1.0, "Label": false}, "Label must be a string"},
		{"boolean", map[string]any{"Ratio": 1.0, "Strict": "yes"}, "Strict must be a boolean"},
		{"bytes type", map[string]any{"Ratio": 1.0, "Key": 12.0}, "Key must be a string or an object"},
		{"bytes no value", map[string]any{"Ratio": 1.0, "Key": map[string]any{"encoding": "hex"}}, "must include 'value'"},
		{"bytes encoding", map[string]any{"Ratio": 1.0, "Key": map[string]any{"value": "x", "encoding": "utf16"}}, "Key.encoding must be one of"},
	}

	op := validationOperation()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := op.ValidateArgs(tt.args)
			require.ErrorIs(t, err, ErrInvalidArgs)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
