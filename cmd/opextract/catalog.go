package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
	"github.com/christianwengert/mcp-cyberchef/pkg/fileops"
)

// catalogFlag adds --catalog to cmd. The returned loader reads the named catalog, or
// the configured output when the flag is unset.
func catalogFlag(cmd *cobra.Command, global *globalOptions) func() (*catalog.Catalog, error) {
	var path string
	cmd.Flags().StringVarP(&path, "catalog", "c", "", "catalog file to read (default is the configured output)")

	return func() (*catalog.Catalog, error) {
		if path == "" {
			cfg, err := global.loadConfig()
			if err != nil {
				return nil, err
			}
			path = cfg.Output
		} else if cwd, err := os.Getwd(); err == nil {
			path = fileops.ResolvePath(path, cwd)
		}

		c, err := catalog.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
		}
		return c, nil
	}
}
