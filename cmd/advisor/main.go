/*
Package main is the entry point for the cspm-advisor CLI.

cspm-advisor serves AI-assisted security recommendations for cloud security
onboarding: a recommendation store with approve/reject workflow, progress
gauges, a chat assistant and optional live posture from AWS, Azure and GCP.

Usage:
  cspm-advisor [command]

Available Commands:
  serve            Run the advisor HTTP API
  recommendations  List recommendations with gauges
  export           Export recommendations to an XLSX workbook
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lvonguyen/cspm-advisor/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "cspm-advisor",
		Short:        "Cloud security AI advisor",
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults are used when empty)")

	rootCmd.AddCommand(cli.NewServeCmd(&configPath))
	rootCmd.AddCommand(cli.NewRecommendationsCmd(&configPath))
	rootCmd.AddCommand(cli.NewExportCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
