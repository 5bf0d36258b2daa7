package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/config"
	"github.com/christianwengert/mcp-cyberchef/internal/logging"
)

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	extract := &extractOptions{global: opts}

	rootCmd := &cobra.Command{
		Use:   "opextract",
		Short: "Extract CyberChef operation metadata into a JSON catalog",
		Long: `opextract scans a directory of CyberChef operation sources, recovers the
metadata each operation declares in its constructor and writes it to a JSON
catalog keyed by operation name.

Without a subcommand the catalog is extracted, as with "opextract extract".`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, extract)
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "opextract version %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/opextract/config.yaml)")
	addExtractFlags(rootCmd, extract)

	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newToolsCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the config file named by --config, or the standard one, and
// resolves its relative paths against the working directory.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.LoadFrom(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logging.Error("Error loading config", "error", err)
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	cfg.Resolve(cwd)
	return cfg, nil
}
