package resolve

import (
	"regexp"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

// ExtractExportedArray finds `export const|let|var name = [ ... ]` in source and parses
// the array with the quasi-literal normalizer. It reports false unless the result is
// a sequence.
func ExtractExportedArray(source, name string) ([]any, bool) {
	pattern, err := regexp.Compile(`export\s+(?:const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*=\s*\[`)
	if err != nil {
		return nil, false
	}

	loc := pattern.FindStringIndex(source)
	if loc == nil {
		return nil, false
	}

	body, ok := literal.Balanced(source, loc[1]-1, '[', ']')
	if !ok {
		return nil, false
	}

	tree, ok := literal.ParseLiteral(literal.ToStrictLiteral("[" + body + "]"))
	if !ok {
		return nil, false
	}
	seq, ok := tree.([]any)
	return seq, ok
}
