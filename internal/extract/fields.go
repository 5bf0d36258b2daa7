package extract

import (
	"regexp"
	"strings"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

// ExtractScalarField returns the string assigned to this.<field> in body. The value
// must be a double-quoted, single-quoted or interpolation-free template literal,
// optionally joined with further literals by +. A null assignment, a non-literal
// expression or a missing assignment all report false.
func ExtractScalarField(body, field string) (string, bool) {
	pattern, err := regexp.Compile(`this\.` + regexp.QuoteMeta(field) + `\s*=\s*`)
	if err != nil {
		return "", false
	}

	// The first literal assignment wins; a field reassigned from a literal later in
	// the constructor still yields that literal.
	for _, loc := range pattern.FindAllStringIndex(body, -1) {
		if !assignmentStart(body, loc[0]) {
			continue
		}
		if value, ok := stringExpression(body[loc[1]:]); ok {
			return value, true
		}
	}
	return "", false
}

// ExtractArrayField parses the array literal assigned to this.<field> in body.
func ExtractArrayField(body, field string) ([]any, bool) {
	pattern, err := regexp.Compile(`this\.` + regexp.QuoteMeta(field) + `\s*=\s*\[`)
	if err != nil {
		return nil, false
	}

	loc := pattern.FindStringIndex(body)
	if loc == nil {
		return nil, false
	}

	inner, ok := literal.Balanced(body, loc[1]-1, '[', ']')
	if !ok {
		return nil, false
	}

	tree, ok := literal.ParseLiteral(literal.ToStrictLiteral("[" + inner + "]"))
	if !ok {
		return nil, false
	}
	seq, ok := tree.([]any)
	return seq, ok
}

// assignmentStart reports whether the match at i is a whole `this.` token, not the
// tail of something like `that.this.x`.
func assignmentStart(body string, i int) bool {
	if i == 0 {
		return true
	}
	c := body[i-1]
	return c != '.' && c != '_' && c != '$' && !isAlnum(c)
}

// stringExpression parses `"a" + 'b' + ...` at the start of s. The expression has to
// end the statement.
func stringExpression(s string) (string, bool) {
	var b strings.Builder
	i := 0
	for {
		raw, next, ok := stringLiteral(s, i)
		if !ok {
			return "", false
		}
		b.WriteString(literal.UnquoteJS(raw))
		i = next

		j := skipSpace(s, i)
		if j < len(s) && s[j] == '+' {
			i = skipSpace(s, j+1)
			continue
		}
		if j == len(s) || s[j] == ';' || s[j] == '}' || strings.ContainsAny(s[i:j], "\n\r") {
			return b.String(), true
		}
		return "", false
	}
}

// stringLiteral reads the literal starting at s[i] and returns its body and the index
// after the closing quote.
func stringLiteral(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}
	quote := s[i]
	if quote != '"' && quote != '\'' && quote != '`' {
		return "", 0, false
	}

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '\n':
			if quote != '`' {
				return "", 0, false
			}
		case quote:
			raw := s[i+1 : j]
			if quote == '`' && strings.Contains(raw, "${") {
				return "", 0, false
			}
			return raw, j + 1, true
		}
	}
	return "", 0, false
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
