package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/extract"
	"github.com/christianwengert/mcp-cyberchef/internal/logging"
	"github.com/christianwengert/mcp-cyberchef/internal/resolve"
	"github.com/christianwengert/mcp-cyberchef/internal/ui"
	"github.com/christianwengert/mcp-cyberchef/pkg/fileops"
)

type extractOptions struct {
	global        *globalOptions
	operationsDir string
	output        string
	quiet         bool
	fetch         bool
	repo          repoFlags
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{global: global}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build the operation catalog",
		Long: `Read every operation source in the operations directory, resolve the
constants their argument lists import and write the catalog as JSON.

With --fetch the sources come from the repository checkout, which is cloned or
updated first.

Symbols that cannot be resolved are left in place and listed in the summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}
	addExtractFlags(cmd, opts)
	return cmd
}

func addExtractFlags(cmd *cobra.Command, opts *extractOptions) {
	cmd.Flags().StringVarP(&opts.operationsDir, "operations", "d", "", "directory of operation sources (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "catalog file to write (default from config)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")
	cmd.Flags().BoolVar(&opts.fetch, "fetch", false, "clone or update the repository checkout and extract from it")
	opts.repo.register(cmd)
}

func runExtract(cmd *cobra.Command, opts *extractOptions) error {
	cfg, err := opts.global.loadConfig()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}
	opts.repo.apply(cfg, cwd)
	if opts.fetch {
		dir, err := prepareCheckout(cfg, logging.GetDefault())
		if err != nil {
			return err
		}
		cfg.OperationsDir = dir
	}
	if opts.operationsDir != "" {
		cfg.OperationsDir = fileops.ResolvePath(opts.operationsDir, cwd)
	}
	if opts.output != "" {
		cfg.Output = fileops.ResolvePath(opts.output, cwd)
	}

	logger := logging.GetDefault().With("operations", cfg.OperationsDir)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := resolve.NewModuleCache(resolve.NewScriptLoader(cfg.EvalTimeout))
	extractor := extract.NewExtractor(resolve.NewResolver(cache, logger), logger, extract.Options{
		Extensions:  cfg.Extensions,
		MaxFileSize: cfg.MaxFileSize,
	})

	result, err := extractor.ExtractAll(ctx, cfg.OperationsDir)
	if err != nil {
		logger.Error("Extraction failed", "error", err)
		return err
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(cfg.Output)); err != nil {
		return err
	}
	if err := extract.WriteCatalog(cfg.Output, result.Catalog); err != nil {
		logger.Error("Writing catalog failed", "output", cfg.Output, "error", err)
		return err
	}
	logger.Debug("Module cache", "loads", cache.Loads())

	if !opts.quiet {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(result, cfg.Output))
	}
	return nil
}
