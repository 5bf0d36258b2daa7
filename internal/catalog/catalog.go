// Package catalog holds the operation catalog model and its JSON form.
//
// The catalog is a JSON object keyed by operation name. Entries keep the order in
// which they were added, so a catalog built from a sorted directory listing is
// written in that same order.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Canonical argument types.
const (
	TypeString  = "string"
	TypeBytes   = "bytes"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeEnum    = "enum"
)

// Encodings lists the encodings accepted for a bytes argument.
func Encodings() []string {
	return []string{"hex", "utf8", "latin1", "base64"}
}

// ArgumentSpec is the canonical description of one operation argument.
type ArgumentSpec struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Options   any      `json:"options,omitempty"`
	Required  bool     `json:"required"`
	Default   any      `json:"default,omitempty"`
	MinLength any      `json:"minLength,omitempty"`
	MaxLength any      `json:"maxLength,omitempty"`
	Pattern   any      `json:"pattern,omitempty"`
	Length    any      `json:"length,omitempty"`
	Min       any      `json:"min,omitempty"`
	Max       any      `json:"max,omitempty"`
	Encodings []string `json:"encodings,omitempty"`
}

// OptionNames returns the enum options that are plain strings.
func (a ArgumentSpec) OptionNames() []string {
	seq, ok := a.Options.([]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(seq))
	for _, opt := range seq {
		if s, ok := opt.(string); ok {
			names = append(names, s)
		}
	}
	return names
}

// Operation is the metadata recovered for one operation. Name is the catalog key and
// is not part of the entry's JSON.
type Operation struct {
	Name        string         `json:"-"`
	Module      *string        `json:"module"`
	Description *string        `json:"description"`
	InfoURL     *string        `json:"infoUrl"`
	InputType   *string        `json:"inputType"`
	OutputType  *string        `json:"outputType"`
	Args        []ArgumentSpec `json:"args"`
	Checks      []any          `json:"checks"`
}

// MarshalJSON writes args and checks as empty arrays when unset.
func (o Operation) MarshalJSON() ([]byte, error) {
	type plain Operation
	p := plain(o)
	if p.Args == nil {
		p.Args = []ArgumentSpec{}
	}
	if p.Checks == nil {
		p.Checks = []any{}
	}
	return literal.MarshalNoEscape(p)
}

// Catalog maps operation names to their metadata.
type Catalog struct {
	ops *orderedmap.OrderedMap[string, *Operation]
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{ops: orderedmap.New[string, *Operation]()}
}

// Put stores op under op.Name and reports whether an earlier entry was replaced. A
// replaced entry keeps its position.
func (c *Catalog) Put(op *Operation) bool {
	_, replaced := c.ops.Set(op.Name, op)
	return replaced
}

// Get returns the operation called name.
func (c *Catalog) Get(name string) (*Operation, bool) {
	return c.ops.Get(name)
}

// Len returns the number of operations.
func (c *Catalog) Len() int {
	return c.ops.Len()
}

// Names returns operation names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.ops.Len())
	for pair := c.ops.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Operations returns the operations in catalog order.
func (c *Catalog) Operations() []*Operation {
	ops := make([]*Operation, 0, c.ops.Len())
	for pair := c.ops.Oldest(); pair != nil; pair = pair.Next() {
		ops = append(ops, pair.Value)
	}
	return ops
}

// MarshalJSON encodes the catalog as an object in catalog order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := c.ops.Oldest(); pair != nil; pair = pair.Next() {
		if pair != c.ops.Oldest() {
			buf.WriteByte(',')
		}

		key, err := literal.MarshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := literal.MarshalNoEscape(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode operation %q: %w", pair.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode writes the catalog with two-space indentation and a trailing newline.
func (c *Catalog) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Bytes returns the encoded catalog.
func (c *Catalog) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
