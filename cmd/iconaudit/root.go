package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for iconaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iconaudit",
		Short: "Audit a website's icon assets",
		Long: `iconaudit audits a website's icon assets: the desktop favicon, the
Apple touch icon, and the web-app-manifest icons.

Candidate icon references are provided via flags or the .iconaudit
configuration file; iconaudit fetches each one, inspects its image
metadata, and classifies the outcome into a severity-tagged JSON report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
