package literal

import (
	"bytes"
	"encoding/json"
	"regexp"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// placeholderPattern matches a symbolic constant such as DELIMITER_OPTIONS.
var placeholderPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// IsPlaceholder reports whether s looks like a bare upper-case identifier.
func IsPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}

// Mapping is an object in a value tree. Keys keep the order in which they were set
// and setting an existing key keeps its original position.
type Mapping struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{pairs: orderedmap.New[string, any]()}
}

// Set stores value under key.
func (m *Mapping) Set(key string, value any) {
	m.pairs.Set(key, value)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	return m.pairs.Get(key)
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.pairs.Get(key)
	return ok
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return m.pairs.Len()
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.pairs.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON encodes the mapping as a JSON object in key order. HTML characters are
// not escaped since descriptions and patterns routinely contain them.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := MarshalNoEscape(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := MarshalNoEscape(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalNoEscape encodes v without escaping <, > and & and without a trailing newline.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
