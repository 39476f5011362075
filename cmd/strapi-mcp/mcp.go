package main

import (
	"fmt"

	"github.com/aellingwood/strapi-mcp/internal/mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long:  "Start an MCP (Model Context Protocol) server over stdio, enabling AI clients to read and manage the connected Strapi instance.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cmd)
	apiClient := newClient(cfg, log)

	ctx := cmd.Context()
	if cfg.TokenCachePath != "" {
		go apiClient.WatchTokenCache(ctx)
	}

	log.Info("starting MCP server", "url", cfg.URL, "admin", cfg.HasAdminCredentials(), "apiToken", cfg.APIToken != "")

	srv := mcpserver.New(cfg, apiClient, version)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
