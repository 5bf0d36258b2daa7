// Package toolschema turns catalog entries into MCP tool definitions.
//
// The tool-serving layer that consumes the catalog exposes one tool per operation.
// Each catalog argument becomes one input property: enums list their options, numeric
// bounds and string constraints carry over, and bytes arguments take an object with
// the raw value and its encoding.
package toolschema

import (
	"strings"
	"unicode"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
)

// ToolName derives a tool name from an operation name: letters and digits are
// lower-cased and every other run of characters becomes a single underscore.
func ToolName(operation string) string {
	var b strings.Builder
	pending := false
	for _, r := range operation {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return b.String()
}

// Build returns the tool definition for op.
func Build(op *catalog.Operation) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description(op)),
		mcp.WithTitleAnnotation(op.Name),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description(inputDescription(op)),
		),
	}

	for _, arg := range op.Args {
		opts = append(opts, argumentOption(arg))
	}

	return mcp.NewTool(ToolName(op.Name), opts...)
}

// BuildAll returns the tool definitions for every operation in c, in catalog order.
// With names, only the named operations are returned; unknown names are reported.
func BuildAll(c *catalog.Catalog, names ...string) ([]mcp.Tool, []string) {
	if len(names) == 0 {
		names = c.Names()
	}

	var tools []mcp.Tool
	var missing []string
	for _, name := range names {
		op, ok := c.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		tools = append(tools, Build(op))
	}
	return tools, missing
}

func description(op *catalog.Operation) string {
	if op.Description != nil && *op.Description != "" {
		return *op.Description
	}
	return op.Name
}

func inputDescription(op *catalog.Operation) string {
	if op.InputType != nil && *op.InputType != "" {
		return "Operation input (" + *op.InputType + ")"
	}
	return "Operation input"
}

func argumentOption(arg catalog.ArgumentSpec) mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(arg.Name)}
	if arg.Required {
		props = append(props, mcp.Required())
	}

	switch arg.Type {
	case catalog.TypeEnum:
		if names := arg.OptionNames(); len(names) > 0 {
			props = append(props, mcp.Enum(names...))
		}
		if s, ok := arg.Default.(string); ok {
			props = append(props, mcp.DefaultString(s))
		}
		return mcp.WithString(arg.Name, props...)

	case catalog.TypeInteger, catalog.TypeNumber:
		if arg.Type == catalog.TypeInteger {
			props = append(props, integer())
		}
		if n, ok := catalog.Number(arg.Min); ok {
			props = append(props, mcp.Min(n))
		}
		if n, ok := catalog.Number(arg.Max); ok {
			props = append(props, mcp.Max(n))
		}
		if n, ok := catalog.Number(arg.Default); ok {
			props = append(props, mcp.DefaultNumber(n))
		}
		return mcp.WithNumber(arg.Name, props...)

	case catalog.TypeBoolean:
		if b, ok := arg.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(b))
		}
		return mcp.WithBoolean(arg.Name, props...)

	case catalog.TypeBytes:
		props = append(props, mcp.Properties(map[string]any{
			"value": map[string]any{
				"type":        "string",
				"description": "Encoded value",
			},
			"encoding": map[string]any{
				"type": "string",
				"enum": encodings(arg),
			},
		}))
		return mcp.WithObject(arg.Name, props...)

	case catalog.TypeString:
		if n, ok := catalog.Number(arg.MinLength); ok {
			props = append(props, mcp.MinLength(int(n)))
		}
		if n, ok := catalog.Number(arg.MaxLength); ok {
			props = append(props, mcp.MaxLength(int(n)))
		}
		if p, ok := arg.Pattern.(string); ok && p != "" {
			props = append(props, mcp.Pattern(p))
		}
		if s, ok := arg.Default.(string); ok {
			props = append(props, mcp.DefaultString(s))
		}
		return mcp.WithString(arg.Name, props...)
	}

	// Unknown source types keep their tag as a hint but accept any string.
	props = append(props, mcp.Title(arg.Type))
	return mcp.WithString(arg.Name, props...)
}

func encodings(arg catalog.ArgumentSpec) []string {
	if len(arg.Encodings) > 0 {
		return arg.Encodings
	}
	return catalog.Encodings()
}

// integer narrows a number property to whole numbers.
func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}
