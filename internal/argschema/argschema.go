// Package argschema folds the argument descriptions found in operation sources into
// the canonical catalog schema.
package argschema

import (
	"slices"
	"strings"

	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

type kind int

const (
	kindPlain kind = iota
	kindToggle
	kindSelector
)

type folding struct {
	canonical string
	kind      kind
}

// foldings is keyed by the lower-cased source tag.
var foldings = map[string]folding{
	"text":              {catalog.TypeString, kindPlain},
	"string":            {catalog.TypeString, kindPlain},
	"shortstring":       {catalog.TypeString, kindPlain},
	"longstring":        {catalog.TypeString, kindPlain},
	"regex":             {catalog.TypeString, kindPlain},
	"binarystring":      {catalog.TypeString, kindPlain},
	"binaryshortstring": {catalog.TypeString, kindPlain},

	"bytearray":   {catalog.TypeBytes, kindPlain},
	"arraybuffer": {catalog.TypeBytes, kindPlain},
	"bytes":       {catalog.TypeBytes, kindPlain},
	"bytestring":  {catalog.TypeBytes, kindPlain},

	"togglestring":    {catalog.TypeBytes, kindToggle},
	"togglebytearray": {catalog.TypeBytes, kindToggle},
	"togglebytes":     {catalog.TypeBytes, kindToggle},

	"int":     {catalog.TypeInteger, kindPlain},
	"integer": {catalog.TypeInteger, kindPlain},

	"number": {catalog.TypeNumber, kindPlain},
	"float":  {catalog.TypeNumber, kindPlain},
	"double": {catalog.TypeNumber, kindPlain},

	"boolean":  {catalog.TypeBoolean, kindPlain},
	"toggle":   {catalog.TypeBoolean, kindPlain},
	"switch":   {catalog.TypeBoolean, kindPlain},
	"checkbox": {catalog.TypeBoolean, kindPlain},

	"option":              {catalog.TypeEnum, kindPlain},
	"select":              {catalog.TypeEnum, kindPlain},
	"enum":                {catalog.TypeEnum, kindPlain},
	"argselector":         {catalog.TypeEnum, kindSelector},
	"editableoption":      {catalog.TypeEnum, kindPlain},
	"editableoptionshort": {catalog.TypeEnum, kindPlain},
	"populateoption":      {catalog.TypeEnum, kindPlain},
	"populatemultioption": {catalog.TypeEnum, kindPlain},
}

// FoldType maps a source type tag to its canonical type. Unknown tags are returned
// unchanged with ok set to false.
func FoldType(tag string) (canonical string, ok bool) {
	f, ok := foldings[strings.ToLower(tag)]
	if !ok {
		return tag, false
	}
	return f.canonical, true
}

// Normalize builds the canonical ArgumentSpec for one raw argument mapping. Fields
// outside the canonical schema are dropped and the raw mapping is not modified.
func Normalize(raw *literal.Mapping) catalog.ArgumentSpec {
	tag := stringField(raw, "type")
	f, known := foldings[strings.ToLower(tag)]

	spec := catalog.ArgumentSpec{
		Name: stringField(raw, "name"),
		Type: tag,
	}
	if known {
		spec.Type = f.canonical
	}

	if v, ok := raw.Get("required"); ok {
		spec.Required, _ = v.(bool)
	}

	if v, ok := raw.Get("default"); ok {
		spec.Default = v
	} else if v, ok := raw.Get("defaultValue"); ok {
		spec.Default = v
	}

	spec.MinLength, _ = raw.Get("minLength")
	spec.MaxLength, _ = raw.Get("maxLength")
	spec.Pattern, _ = raw.Get("pattern")
	spec.Length, _ = raw.Get("length")
	spec.Min, _ = raw.Get("min")
	spec.Max, _ = raw.Get("max")

	switch spec.Type {
	case catalog.TypeEnum:
		spec.Options = enumOptions(raw, f.kind == kindSelector)
	case catalog.TypeBytes:
		spec.Encodings = byteEncodings(raw, f.kind == kindToggle)
	}

	return spec
}

func enumOptions(raw *literal.Mapping, selector bool) any {
	value, ok := raw.Get("value")
	if !ok {
		options, _ := raw.Get("options")
		return options
	}

	seq, isSeq := value.([]any)
	if !isSeq {
		return value
	}
	if selector || hasNamedEntry(seq) {
		return optionNames(seq)
	}
	return slices.Clone(seq)
}

func hasNamedEntry(seq []any) bool {
	for _, entry := range seq {
		if m, ok := entry.(*literal.Mapping); ok && m.Has("name") {
			return true
		}
	}
	return false
}

// optionNames keeps string entries and the name of mapping entries, dropping empty ones.
func optionNames(seq []any) []any {
	names := make([]any, 0, len(seq))
	for _, entry := range seq {
		var name string
		switch e := entry.(type) {
		case string:
			name = e
		case *literal.Mapping:
			name = stringField(e, "name")
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func byteEncodings(raw *literal.Mapping, force bool) []string {
	if !force {
		if v, ok := raw.Get("encodings"); ok {
			if seq, ok := v.([]any); ok {
				encodings := make([]string, 0, len(seq))
				for _, e := range seq {
					if s, ok := e.(string); ok {
						encodings = append(encodings, s)
					}
				}
				return encodings
			}
		}
	}
	return catalog.Encodings()
}

func stringField(m *literal.Mapping, key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}
