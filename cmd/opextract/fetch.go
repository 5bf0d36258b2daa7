package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/config"
	"github.com/christianwengert/mcp-cyberchef/internal/logging"
	"github.com/christianwengert/mcp-cyberchef/internal/upstream"
	"github.com/christianwengert/mcp-cyberchef/pkg/fileops"
)

// repoFlags overrides the repository section of the config.
type repoFlags struct {
	url    string
	branch string
	path   string
}

func (f *repoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "repo", "", "repository to check out (default from config)")
	cmd.Flags().StringVar(&f.branch, "branch", "", "branch to follow (default is the remote's default branch)")
	cmd.Flags().StringVar(&f.path, "checkout", "", "clone directory (default under $XDG_DATA_HOME/opextract)")
}

// apply copies the set flags into cfg. A --checkout path is taken relative to cwd.
func (f *repoFlags) apply(cfg *config.Config, cwd string) {
	if f.url != "" {
		cfg.Repository.URL = f.url
		if f.path == "" {
			// the configured path belongs to the configured remote
			cfg.Repository.Path = ""
		}
	}
	if f.branch != "" {
		cfg.Repository.Branch = f.branch
	}
	if f.path != "" {
		cfg.Repository.Path = fileops.ResolvePath(f.path, cwd)
	}
}

// prepareCheckout clones or updates the configured repository and returns the
// operations directory inside it.
func prepareCheckout(cfg *config.Config, logger *logging.AppLogger) (string, error) {
	path, err := cfg.Repository.CheckoutPath()
	if err != nil {
		return "", fmt.Errorf("cannot determine checkout path: %w", err)
	}

	checkout := upstream.Checkout{
		RemoteURL: cfg.Repository.URL,
		Branch:    cfg.Repository.Branch,
		Path:      path,
		Tokens:    upstream.NewCredentialStore(),
	}
	root, err := checkout.Prepare(logger)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(upstream.OperationsSubdir)), nil
}

func newFetchCmd(global *globalOptions) *cobra.Command {
	flags := &repoFlags{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Clone or update the CyberChef checkout",
		Long: `Clone the configured repository, or fast-forward an existing clone, and print
the operations directory inside it.

A clone with local changes is left untouched. Private repositories use the
token stored with "opextract token set".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}
			flags.apply(cfg, cwd)

			dir, err := prepareCheckout(cfg, logging.GetDefault())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
