package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/ui"
)

func newListCmd(global *globalOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "list [NAME...]",
		Short: "List the operations in a catalog",
		Long: `Print a table of the operations in the catalog. With operation names, print
the argument schema of each named operation instead.`,
	}
	load := catalogFlag(cmd, global)
	cmd.Flags().IntVarP(&width, "width", "w", ui.DefaultDescriptionWidth, "description column width")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			ui.RenderOperations(out, c.Operations(), width)
			return nil
		}

		for i, name := range args {
			op, ok := c.Get(name)
			if !ok {
				return fmt.Errorf("unknown operation %q", name)
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			ui.RenderArguments(out, op)
		}
		return nil
	}

	return cmd
}
