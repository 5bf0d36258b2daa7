package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ErrInvalidArgs is returned by ValidateArgs for arguments that do not fit the
// operation's schema.
var ErrInvalidArgs = errors.New("invalid arguments")

// ValidateArgs checks a set of named argument values against the operation's
// argument schema. Values are expected in their decoded JSON form: strings, bools,
// numbers as json.Number or float64, and bytes either as a string or as an object
// with a "value" and an optional "encoding".
//
// Arguments with a type outside the canonical set accept any value.
func (o *Operation) ValidateArgs(provided map[string]any) error {
	known := make(map[string]bool, len(o.Args))
	for _, a := range o.Args {
		known[a.Name] = true
	}

	var unknown []string
	for name := range provided {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown args %q", ErrInvalidArgs, unknown)
	}

	for _, a := range o.Args {
		v, has := provided[a.Name]
		if !has {
			if a.Required {
				return fmt.Errorf("%w: missing required arg %q", ErrInvalidArgs, a.Name)
			}
			continue
		}
		if err := a.check(v); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidArgs, err)
		}
	}
	return nil
}

func (a ArgumentSpec) check(v any) error {
	switch a.Type {
	case TypeEnum:
		names := a.OptionNames()
		s, ok := v.(string)
		if !ok || !slices.Contains(names, s) {
			return fmt.Errorf("%s must be one of %q, got %v", a.Name, names, v)
		}

	case TypeNumber, TypeInteger:
		n, ok := Number(v)
		if !ok {
			return fmt.Errorf("%s must be a number", a.Name)
		}
		if a.Type == TypeInteger && n != math.Trunc(n) {
			return fmt.Errorf("%s must be an integer", a.Name)
		}
		if lo, ok := Number(a.Min); ok && n < lo {
			return fmt.Errorf("%s < %v", a.Name, a.Min)
		}
		if hi, ok := Number(a.Max); ok && n > hi {
			return fmt.Errorf("%s > %v", a.Name, a.Max)
		}

	case TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s must be a string", a.Name)
		}

	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s must be a boolean", a.Name)
		}

	case TypeBytes:
		return a.checkBytes(v)
	}
	return nil
}

func (a ArgumentSpec) checkBytes(v any) error {
	switch b := v.(type) {
	case string:
		return nil
	case map[string]any:
		value, ok := b["value"]
		if !ok {
			return fmt.Errorf("%s must include 'value' when given as an object", a.Name)
		}
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%s.value must be a string", a.Name)
		}
		enc, ok := b["encoding"]
		if !ok || enc == nil {
			return nil
		}
		s, ok := enc.(string)
		if !ok {
			return fmt.Errorf("%s.encoding must be a string", a.Name)
		}
		if len(a.Encodings) > 0 && !slices.Contains(a.Encodings, s) {
			return fmt.Errorf("%s.encoding must be one of %q, got %q", a.Name, a.Encodings, s)
		}
		return nil
	default:
		return fmt.Errorf("%s must be a string or an object with 'value' and optional 'encoding'", a.Name)
	}
}
