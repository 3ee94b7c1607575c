// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"
	"time"

	"igvfcatalog/cli/internal/catalog"
	"igvfcatalog/cli/internal/config"
	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/httperrors"
	"igvfcatalog/cli/internal/invoker"
	"igvfcatalog/cli/internal/logging"
	"igvfcatalog/cli/internal/trpc"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const defaultURLHint = config.DefaultURL

// flags holds the persistent flag values shared by every command.
var flags struct {
	url          string
	configPath   string
	verbose      bool
	timeout      time.Duration
	headers      []string
	maxURLLength int
}

// settings resolves the effective configuration: built-in defaults, then the
// config file when --config was given, then explicitly set flags.
func settings(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	fs := cmd.Flags()

	if fs.Changed("config") {
		p := flags.configPath
		if p == "" || p == "default" {
			dp, err := config.DefaultPath()
			if err != nil {
				return cfg, err
			}
			p = dp
		}
		loaded, err := config.Load(p)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if fs.Changed("url") {
		cfg.URL = flags.url
	}
	if fs.Changed("timeout") {
		cfg.Timeout = flags.timeout.String()
	}
	if fs.Changed("max-url-length") {
		cfg.MaxURLLength = flags.maxURLLength
	}
	if fs.Changed("header") {
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for _, h := range flags.headers {
			k, v, ok := strings.Cut(h, "=")
			if !ok || strings.TrimSpace(k) == "" {
				return cfg, fmt.Errorf("invalid --header %q: want key=value", h)
			}
			cfg.Headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, cfg.Validate()
}

// newClient builds the tRPC client handle for one command invocation.
func newClient(cmd *cobra.Command) (*trpc.Client, config.Config, hclog.Logger, error) {
	cfg, err := settings(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, cfg, nil, err
	}

	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	opts := []trpc.Option{
		trpc.WithTimeout(timeout),
		trpc.WithMaxURLLength(cfg.MaxURLLength),
		trpc.WithLogger(logger),
	}
	for k, v := range cfg.Headers {
		logger.Debug("static header", "key", k, "value", logging.MaskHeader(k, v))
		opts = append(opts, trpc.WithHeader(k, v))
	}
	return trpc.New(cfg.URL, opts...), cfg, logger, nil
}

// runRegions issues one regions query and prints its records to stdout.
func runRegions(cmd *cobra.Command, in catalog.RegionsInput) error {
	rpc, cfg, logger, err := newClient(cmd)
	if err != nil {
		return err
	}
	logger.Debug("regions", "gte", in.Gte, "lt", in.Lt, "chr", in.Chr)

	stop := startSpinner(cmd.ErrOrStderr(), "Querying regions", flags.verbose)
	err = invoker.Run(cmd.Context(), catalog.NewClient(rpc), in, cmd.OutOrStdout())
	stop()
	if err != nil {
		return presentCallError(cmd, err, "querying regions", cfg.URL)
	}
	return nil
}

// presentCallError explains transport failures on stderr and returns err for exit handling.
func presentCallError(cmd *cobra.Command, err error, context string, endpoint string) error {
	if errors.Is(err, errors.TransportFailed) {
		return httperrors.FormatNetworkError(cmd.ErrOrStderr(), err, context, endpoint)
	}
	return err
}
