package main

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity and credentials",
	Long:  "Verify that the Strapi instance is reachable and that the configured credentials work.",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Fprintf(cmd.OutOrStdout(), "Checking %s\n\n", cfg.URL)

	failed := false
	pass := func(format string, a ...any) {
		green.Fprint(cmd.OutOrStdout(), "  ✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
	}
	fail := func(format string, a ...any) {
		red.Fprint(cmd.OutOrStdout(), "  ✗ ")
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
		failed = true
	}

	if err := cfg.Validate(); err != nil {
		fail("configuration: %v", err)
		return fmt.Errorf("configuration is not usable")
	}
	pass("configuration valid")

	apiClient := newClient(cfg, discardLogger())
	ctx := cmd.Context()

	if _, err := apiClient.PublicRequest(ctx, http.MethodGet, "/_health", nil, nil); err != nil {
		fail("server unreachable: %v", err)
	} else {
		pass("server reachable")
	}

	if cfg.HasAdminCredentials() {
		if err := apiClient.Login(ctx); err != nil {
			fail("admin login: %v", err)
		} else {
			pass("admin login ok (%s)", cfg.AdminEmail)
			if types, err := apiClient.ListContentTypes(ctx, true); err != nil {
				fail("listing content types: %v", err)
			} else {
				pass("%d user content type(s) visible", len(types))
			}
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  - admin credentials not configured; admin-only tools will be unavailable")
	}

	if cfg.APIToken != "" {
		pass("API token configured")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  - no API token; public-surface fallback disabled")
	}

	if failed {
		return fmt.Errorf("one or more checks failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nAll checks passed.")
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
