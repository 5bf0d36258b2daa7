package literal

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ParseLiteral decodes strict JSON text into a value tree. It reports false instead of
// returning an error: a literal that cannot be parsed is treated as absent.
func ParseLiteral(text string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, false
	}

	// Trailing content after the first value means the text was not one literal.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	return value, true
}

var errUnexpectedToken = errors.New("unexpected token")

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			return nil, errUnexpectedToken
		}
	default:
		// string, json.Number, bool or nil
		return t, nil
	}
}

func decodeMapping(dec *json.Decoder) (*Mapping, error) {
	m := NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errUnexpectedToken
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeSequence(dec *json.Decoder) ([]any, error) {
	seq := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		seq = append(seq, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return seq, nil
}
