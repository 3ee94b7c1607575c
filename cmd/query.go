// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/invoker"
	"igvfcatalog/cli/internal/trpc"

	"github.com/spf13/cobra"
)

// queryCmd calls any query procedure on the router with a raw JSON input.
var queryCmd = &cobra.Command{
	Use:   "query <path> [json-input]",
	Short: "Call a query procedure with a JSON input",
	Long: `The query command calls an arbitrary query procedure of the catalog router.
The input, when given, must be a JSON value; it is sent unchanged. The procedure's
data is printed as indented JSON.`,
	Example: `  igvf-catalog query regions '{"gte":69754011,"lt":69754099,"chr":"1"}'`,
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcedure(cmd, trpc.OpQuery, args)
	},
}

// mutateCmd calls a mutation procedure on the router.
var mutateCmd = &cobra.Command{
	Use:   "mutate <path> [json-input]",
	Short: "Call a mutation procedure with a JSON input",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcedure(cmd, trpc.OpMutation, args)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(mutateCmd)
}

// parseInput turns an optional command-line JSON argument into a call input.
func parseInput(path string, arg string) (any, error) {
	if arg == "" {
		return nil, nil
	}
	if !json.Valid([]byte(arg)) {
		return nil, errors.New(errors.InvalidInput, fmt.Sprintf("%s: input is not valid JSON", path))
	}
	return json.RawMessage(arg), nil
}

func runProcedure(cmd *cobra.Command, typ trpc.OpType, args []string) error {
	path := args[0]
	var raw string
	if len(args) > 1 {
		raw = args[1]
	}
	input, err := parseInput(path, raw)
	if err != nil {
		return err
	}

	rpc, cfg, _, err := newClient(cmd)
	if err != nil {
		return err
	}

	stop := startSpinner(cmd.ErrOrStderr(), "Calling "+path, flags.verbose)
	var data json.RawMessage
	if typ == trpc.OpMutation {
		err = rpc.Mutate(cmd.Context(), path, input, &data)
	} else {
		err = rpc.Query(cmd.Context(), path, input, &data)
	}
	stop()
	if err != nil {
		return presentCallError(cmd, err, "calling "+path, cfg.URL)
	}
	return invoker.Print(cmd.OutOrStdout(), data)
}
