// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"igvfcatalog/cli/internal/catalog"

	"github.com/spf13/cobra"
)

var regionsInput = catalog.DefaultRegionsInput()

// regionsCmd queries the regions procedure with caller-chosen bounds.
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Query genomic regions on one chromosome",
	Long: `The regions command calls regions.query on the catalog router for the
half-open interval [gte, lt) on chromosome chr and prints the records in the
order the server returns them.

An empty interval (gte equal to lt) is sent as is; the server decides what it
returns for it.`,
	Example: `  igvf-catalog regions --chr 1 --gte 69754011 --lt 69754099
  igvf-catalog regions --chr X --gte 1000 --lt 2000 --url http://catalog.internal:2023/trpc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegions(cmd, regionsInput)
	},
}

func init() {
	d := catalog.DefaultRegionsInput()
	regionsCmd.Flags().Int64Var(&regionsInput.Gte, "gte", d.Gte, "Lower bound, inclusive")
	regionsCmd.Flags().Int64Var(&regionsInput.Lt, "lt", d.Lt, "Upper bound, exclusive")
	regionsCmd.Flags().StringVar(&regionsInput.Chr, "chr", d.Chr, "Chromosome")
	rootCmd.AddCommand(regionsCmd)
}
