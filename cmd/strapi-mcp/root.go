package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/aellingwood/strapi-mcp/internal/client"
	"github.com/aellingwood/strapi-mcp/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "strapi-mcp",
	Short: "An MCP server for Strapi",
	Long:  "strapi-mcp exposes a Strapi instance's content types, entries, media, and locales as MCP tools for AI clients.",
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to config file (default: strapi-mcp.yaml if present)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the effective configuration for a command invocation.
// An explicitly flagged config file must exist; the default one is optional.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if _, err := os.Stat("strapi-mcp.yaml"); err == nil {
			path = "strapi-mcp.yaml"
		}
	}
	return config.Load(path)
}

// newLogger builds the process logger. Everything goes to stderr: stdout
// carries the MCP wire protocol when serving.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newClient wires a configured API client.
func newClient(cfg *config.Config, log *slog.Logger) *client.Client {
	return client.New(client.Options{
		BaseURL:          cfg.URL,
		APIToken:         cfg.APIToken,
		AdminEmail:       cfg.AdminEmail,
		AdminPassword:    cfg.AdminPassword,
		RequestTimeout:   cfg.Timeouts.Request,
		LoginWaitTimeout: cfg.Timeouts.LoginWait,
		MaxLoginAttempts: cfg.Login.MaxAttempts,
		LoginBackoffBase: cfg.Login.BackoffBase,
		MinLoginInterval: cfg.Login.MinInterval,
		ExpirySkew:       cfg.Login.ExpirySkew,
		TokenCachePath:   cfg.TokenCachePath,
		Logger:           log,
	})
}

// discardLogger silences client logging for commands that format their own
// output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
