package literal

import "strings"

// LocateBlock finds the first occurrence of anchor, then the first open delimiter at
// or after the start of the anchor, and returns the text between that delimiter and
// its matching close delimiter.
//
// Quotes are not tracked: the scan only counts open and close characters, so it is
// meant for regions whose delimiters are balanced.
//
// Example:
//
//	body, ok := literal.LocateBlock("foo() { a; { b; } c; }", "foo() {", '{', '}')
//	// body == " a; { b; } c; ", ok == true
func LocateBlock(text, anchor string, open, closing byte) (string, bool) {
	start := strings.Index(text, anchor)
	if start < 0 {
		return "", false
	}

	rel := strings.IndexByte(text[start:], open)
	if rel < 0 {
		return "", false
	}

	return Balanced(text, start+rel, open, closing)
}

// Balanced returns the text enclosed by the open delimiter at index from and its
// matching close delimiter. It reports false when text[from] is not the open
// delimiter or the region never returns to depth zero.
func Balanced(text string, from int, open, closing byte) (string, bool) {
	if from < 0 || from >= len(text) || text[from] != open {
		return "", false
	}

	depth := 0
	for i := from; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[from+1 : i], true
			}
		}
	}

	return "", false
}
