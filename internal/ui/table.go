package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
)

// DefaultDescriptionWidth is the description column width used by RenderOperations.
const DefaultDescriptionWidth = 60

// RenderOperations writes a table of operations to w: name, module, input and output
// types, argument count and a wrapped description.
func RenderOperations(w io.Writer, ops []*catalog.Operation, descWidth int) {
	if len(ops) == 0 {
		fmt.Fprintln(w, WarningStyle.Render("No operations found"))
		return
	}
	if descWidth <= 0 {
		descWidth = DefaultDescriptionWidth
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("MODULE"),
		text.FgHiCyan.Sprint("TYPES"),
		text.FgHiCyan.Sprint("ARGS"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
	})

	for _, op := range ops {
		t.AppendRow(table.Row{
			op.Name,
			valueOr(op.Module, "-"),
			valueOr(op.InputType, "?") + " → " + valueOr(op.OutputType, "?"),
			len(op.Args),
			Wrap(firstParagraph(valueOr(op.Description, "")), descWidth),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(ops)})

	t.Render()
}

// RenderArguments writes the argument schema of one operation to w.
func RenderArguments(w io.Writer, op *catalog.Operation) {
	fmt.Fprintln(w, TitleStyle.Render(op.Name))
	if op.InfoURL != nil {
		fmt.Fprintln(w, SubtitleStyle.Render(*op.InfoURL))
	}
	if len(op.Args) == 0 {
		fmt.Fprintln(w, HelpStyle.Render("No arguments"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ARGUMENT", "TYPE", "REQUIRED", "DETAILS"})
	for _, arg := range op.Args {
		t.AppendRow(table.Row{arg.Name, arg.Type, arg.Required, argumentDetails(arg)})
	}
	t.Render()
}

func argumentDetails(arg catalog.ArgumentSpec) string {
	var parts []string
	if names := arg.OptionNames(); len(names) > 0 {
		parts = append(parts, "options: "+Truncate(strings.Join(names, ", "), DefaultDescriptionWidth))
	} else if s, ok := arg.Options.(string); ok {
		parts = append(parts, "options: "+s+" (unresolved)")
	}
	if len(arg.Encodings) > 0 {
		parts = append(parts, "encodings: "+strings.Join(arg.Encodings, ", "))
	}
	if arg.Min != nil {
		parts = append(parts, fmt.Sprintf("min: %v", arg.Min))
	}
	if arg.Max != nil {
		parts = append(parts, fmt.Sprintf("max: %v", arg.Max))
	}
	if arg.Default != nil {
		parts = append(parts, fmt.Sprintf("default: %v", arg.Default))
	}
	return strings.Join(parts, "\n")
}

func firstParagraph(s string) string {
	if i := strings.Index(s, "<br>"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
