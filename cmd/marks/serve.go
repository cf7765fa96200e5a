package main

import (
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	marksmcp "github.com/gorewood/marks/internal/mcp"
	"github.com/gorewood/marks/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var vaultDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run marks as a Model Context Protocol (MCP) server over stdio.

This exposes marker toggling and week grouping as MCP tools that any
MCP-capable agent environment can use. Note paths are relative to --vault.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "marks": {
        "command": "marks",
        "args": ["serve", "--vault", "/path/to/vault"]
      }
    }
  }

Available tools: toggle_line, toggle_file, weeks, settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			root, err := resolveVault(vaultDir)
			if err != nil {
				return err
			}

			log := newLogger(cmd)
			defer func() { _ = log.Sync() }()
			log.Info("serving MCP over stdio", zap.String("vault", root), zap.String("version", buildVersion()))

			server := marksmcp.NewServer(buildVersion(), settings, root, log)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&vaultDir, "vault", ".", "Vault root directory")
	return cmd
}

// resolveVault returns the absolute vault directory.
func resolveVault(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to resolve vault path", err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", output.NewUserError("vault is not a directory: " + root)
	}
	return root, nil
}
