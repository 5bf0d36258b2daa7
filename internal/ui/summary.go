package ui

import (
	"fmt"
	"strings"

	"github.com/christianwengert/mcp-cyberchef/internal/extract"
)

// RenderSummary describes an extraction run for the terminal.
func RenderSummary(result *extract.Result, output string) string {
	var b strings.Builder

	fmt.Fprintln(&b, SuccessStyle.Render(fmt.Sprintf("Extracted %d operations from %d files", result.Catalog.Len(), result.Files)))
	fmt.Fprintln(&b, SubtitleStyle.Render("Catalog written to "+output))

	if len(result.Skipped) > 0 {
		fmt.Fprintln(&b, HelpStyle.Render(fmt.Sprintf("Skipped %d files without an operation", len(result.Skipped))))
	}

	if len(result.Duplicates) > 0 {
		fmt.Fprintln(&b, WarningStyle.Render("Duplicate operation names (later definition kept):"))
		for _, name := range result.Duplicates {
			fmt.Fprintln(&b, ListStyle.Render(name))
		}
	}

	if len(result.UnknownTypes) > 0 {
		fmt.Fprintln(&b, WarningStyle.Render("Argument types without a canonical form: "+strings.Join(result.UnknownTypes, ", ")))
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(&b, ErrorStyle.Render(fmt.Sprintf("%d unresolved symbols:", len(result.Diagnostics))))
		for _, d := range result.Diagnostics {
			fmt.Fprintln(&b, ListStyle.Render(d.String()))
		}
	}

	return b.String()
}
