package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

// ErrMalformed is returned when a catalog file is not a JSON object of operations.
var ErrMalformed = errors.New("malformed catalog")

// Load reads a catalog written by Encode.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a catalog from r. Entry order, option order and check contents are
// kept as written.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	tree, ok := literal.ParseLiteral(string(data))
	if !ok {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root, ok := tree.(*literal.Mapping)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	c := New()
	for _, name := range root.Keys() {
		entry, _ := root.Get(name)
		fields, ok := entry.(*literal.Mapping)
		if !ok {
			return nil, fmt.Errorf("%w: entry %q is not an object", ErrMalformed, name)
		}
		c.Put(operationFromMapping(name, fields))
	}
	return c, nil
}

func operationFromMapping(name string, m *literal.Mapping) *Operation {
	op := &Operation{
		Name:        name,
		Module:      optionalString(m, "module"),
		Description: optionalString(m, "description"),
		InfoURL:     optionalString(m, "infoUrl"),
		InputType:   optionalString(m, "inputType"),
		OutputType:  optionalString(m, "outputType"),
		Args:        []ArgumentSpec{},
		Checks:      []any{},
	}

	if args, ok := getSequence(m, "args"); ok {
		for _, raw := range args {
			if am, ok := raw.(*literal.Mapping); ok {
				op.Args = append(op.Args, argumentFromMapping(am))
			}
		}
	}
	if checks, ok := getSequence(m, "checks"); ok {
		op.Checks = checks
	}
	return op
}

func argumentFromMapping(m *literal.Mapping) ArgumentSpec {
	arg := ArgumentSpec{}
	if s := optionalString(m, "name"); s != nil {
		arg.Name = *s
	}
	if s := optionalString(m, "type"); s != nil {
		arg.Type = *s
	}
	if v, ok := m.Get("required"); ok {
		arg.Required, _ = v.(bool)
	}

	arg.Options, _ = m.Get("options")
	arg.Default, _ = m.Get("default")
	arg.MinLength, _ = m.Get("minLength")
	arg.MaxLength, _ = m.Get("maxLength")
	arg.Pattern, _ = m.Get("pattern")
	arg.Length, _ = m.Get("length")
	arg.Min, _ = m.Get("min")
	arg.Max, _ = m.Get("max")

	if encs, ok := getSequence(m, "encodings"); ok {
		for _, e := range encs {
			if s, ok := e.(string); ok {
				arg.Encodings = append(arg.Encodings, s)
			}
		}
	}
	return arg
}

func optionalString(m *literal.Mapping, key string) *string {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func getSequence(m *literal.Mapping, key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := v.([]any)
	return seq, ok
}

// Number converts a numeric tree value to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
