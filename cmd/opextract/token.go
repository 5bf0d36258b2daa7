package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/christianwengert/mcp-cyberchef/internal/upstream"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the access token for private repositories",
		Long: `The token is kept in the OS credential store. The ` + upstream.TokenEnv + `
environment variable takes precedence over the stored token.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store a token read from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := upstream.NewCredentialStore().Store(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := upstream.NewCredentialStore().Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a token is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := upstream.NewCredentialStore().Token()
			if err != nil {
				return err
			}
			if token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No token configured")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Token configured")
			}
			return nil
		},
	})

	return cmd
}

func readToken(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("no token on standard input")
	}
	return token, nil
}
