// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"igvfcatalog/cli/internal/config"
	"igvfcatalog/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var forceInit bool

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the client config file",
	Long: `The config command manages the optional config file. The file is only read
when --config is passed; plain invocations always use the built-in defaults.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to the XDG config dir",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(p); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", p)
		}
		if err := config.Save(p, config.Default()); err != nil {
			return err
		}
		pterm.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", p))
		pterm.Fprintln(cmd.OutOrStdout(), "Use it with: igvf-catalog --config default")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings(cmd)
		if err != nil {
			return err
		}
		for k := range cfg.Headers {
			cfg.Headers[k] = logging.MaskHeader(k, cfg.Headers[k])
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
