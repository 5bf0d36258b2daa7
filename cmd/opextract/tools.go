package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/toolschema"
)

func newToolsCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools [NAME...]",
		Short: "Print MCP tool definitions for catalog operations",
		Long: `Print the MCP tool definition of every operation in the catalog as a JSON
array, or of the named operations only.`,
	}
	load := catalogFlag(cmd, global)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := load()
		if err != nil {
			return err
		}

		tools, missing := toolschema.BuildAll(c, args...)
		if len(missing) > 0 {
			return fmt.Errorf("unknown operations: %s", strings.Join(missing, ", "))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(tools)
	}

	return cmd
}
