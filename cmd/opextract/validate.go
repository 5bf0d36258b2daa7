package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/ui"
)

func newValidateCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate NAME [ARGS_JSON|-]",
		Short: "Check argument values against an operation's schema",
		Long: `Validate a JSON object of named argument values against the argument schema
of one catalog operation. The object is read from the second argument, or from
standard input when it is "-" or missing.

Example:
  opextract validate "From Base64" '{"Alphabet": "Standard (RFC 4648): A-Za-z0-9+/="}'`,
		Args: cobra.RangeArgs(1, 2),
	}
	load := catalogFlag(cmd, global)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}

		op, ok := c.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown operation %q", args[0])
		}

		var r io.Reader = cmd.InOrStdin()
		if len(args) == 2 && args[1] != "-" {
			r = strings.NewReader(args[1])
		}

		provided, err := decodeArgs(r)
		if err != nil {
			return err
		}

		if err := op.ValidateArgs(provided); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render(fmt.Sprintf("Arguments are valid for %s", op.Name)))
		return nil
	}

	return cmd
}

func decodeArgs(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var provided map[string]any
	if err := dec.Decode(&provided); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	if provided == nil {
		provided = map[string]any{}
	}
	return provided, nil
}
