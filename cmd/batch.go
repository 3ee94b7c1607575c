// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/invoker"
	"igvfcatalog/cli/internal/trpc"

	"github.com/spf13/cobra"
)

// batchEntry is the printed outcome of one call in a batch.
type batchEntry struct {
	Path  string          `json:"path"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *batchError     `json:"error,omitempty"`
}

type batchError struct {
	Kind    errors.Kind `json:"kind"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
}

// batchCmd sends several queries to the router in one round trip.
var batchCmd = &cobra.Command{
	Use:   "batch <path>[=json-input]...",
	Short: "Send several queries in one batched request",
	Long: `The batch command sends every given query in a single batched HTTP request
(split only when --max-url-length requires it) and prints one entry per call,
in argument order. Each entry holds either the procedure's data or its error.
The command exits non-zero when any call failed.`,
	Example: `  igvf-catalog batch 'regions={"gte":69754011,"lt":69754099,"chr":"1"}' 'regions={"gte":1,"lt":100,"chr":"2"}'`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ops := make([]trpc.Operation, 0, len(args))
		for _, arg := range args {
			path, raw, _ := strings.Cut(arg, "=")
			input, err := parseInput(path, raw)
			if err != nil {
				return err
			}
			ops = append(ops, trpc.Operation{Type: trpc.OpQuery, Path: path, Input: input})
		}

		rpc, cfg, logger, err := newClient(cmd)
		if err != nil {
			return err
		}

		stop := startSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Sending %d calls", len(ops)), flags.verbose)
		results, err := rpc.Batch(cmd.Context(), ops)
		stop()
		if err != nil {
			return presentCallError(cmd, err, "sending the batch", cfg.URL)
		}

		entries, failed := batchEntries(results)
		if err := invoker.Print(cmd.OutOrStdout(), entries); err != nil {
			return err
		}
		logger.Debug("batch done", "calls", len(results), "failed", failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d calls failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

// batchEntries converts results to printable entries and counts failures.
func batchEntries(results []trpc.Result) ([]batchEntry, int) {
	entries := make([]batchEntry, len(results))
	failed := 0
	for i, r := range results {
		entries[i] = batchEntry{Path: r.Path, Data: r.Data}
		if r.Err == nil {
			continue
		}
		failed++
		be := &batchError{Kind: errors.KindOf(r.Err), Message: r.Err.Error()}
		var remote *trpc.RemoteError
		if stderrors.As(r.Err, &remote) {
			be.Code = remote.Data.Code
			be.Message = remote.Message
		}
		entries[i].Error = be
	}
	return entries, failed
}
