package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Wrap word-wraps text to width. Paragraph breaks and manual line breaks are kept;
// words longer than width are broken.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	for i, paragraph := range paragraphs {
		lines := strings.Split(paragraph, "\n")
		for j, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				lines[j] = ""
				continue
			}
			lines[j] = wrap.String(wordwrap.String(line, width), width)
		}
		paragraphs[i] = strings.Join(lines, "\n")
	}

	return strings.Join(paragraphs, "\n\n")
}

// Truncate shortens text to at most width runes, marking the cut with "...".
func Truncate(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
