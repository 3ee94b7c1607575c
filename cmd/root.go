// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the IGVF catalog client.
// It implements subcommands for querying the catalog's tRPC router using the Cobra
// CLI framework. Run without arguments, the CLI issues the default regions query
// against the local catalog server and prints the result.
package cmd

import (
	"fmt"
	"os"

	"igvfcatalog/cli/internal/catalog"
	"igvfcatalog/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// With no flags it queries regions [69754011, 69754099) on chromosome 1 at
// http://localhost:2023/trpc.
var rootCmd = &cobra.Command{
	Use:   "igvf-catalog",
	Short: "Query the IGVF catalog over tRPC",
	Long: `igvf-catalog is a command-line client for the IGVF catalog tRPC API.

Run without arguments it queries the regions procedure on the local catalog
server (http://localhost:2023/trpc) for chromosome 1, positions 69754011 up to
69754099, and prints the records it returns.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "igvf-catalog %s\n", Version)
			return nil
		}
		return runRegions(cmd, catalog.DefaultRegionsInput())
	},
}

// Execute runs the CLI application.
// It executes the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("igvf-catalog", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show client version information")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.url, "url", "", "tRPC endpoint (default "+defaultURLHint+")")
	pf.StringVar(&flags.configPath, "config", "", `Config file to read; "default" uses the XDG config dir`)
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log requests and responses to stderr")
	pf.DurationVar(&flags.timeout, "timeout", 0, "Per-request timeout (0 means none)")
	pf.StringArrayVarP(&flags.headers, "header", "H", nil, "Extra request header as key=value (repeatable)")
	pf.IntVar(&flags.maxURLLength, "max-url-length", 0, "Split query batches whose URL would exceed this length (0 means never)")
}
