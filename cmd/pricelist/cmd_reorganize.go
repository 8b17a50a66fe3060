package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerissecure/pricelist"
)

var reorganizeOut string

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize",
	Short: "Copy price-list sections into phase order",
	Long: `Reads the source workbook, then writes a new workbook holding the header
row, the "Last Updated" row and, per category, the manifest's phase headers
and sections in order. Values and cell formatting are copied from the source.

Missing sections are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runReorganize,
}

func init() {
	reorganizeCmd.Flags().StringVarP(&reorganizeOut, "out", "o", "", "Output workbook (default: manifest output)")
	rootCmd.AddCommand(reorganizeCmd)
}

func runReorganize(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	if reorganizeOut != "" {
		m.Output = reorganizeOut
	}

	rep, err := pricelist.Reorganize(m, pricelist.WithLogger(logger))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range rep.CategoriesMissing {
		fmt.Fprintf(w, "ERROR: could not find category %q\n", name)
	}
	for _, name := range rep.SectionsMissing {
		fmt.Fprintf(w, "WARNING: section %q not found\n", name)
	}
	for _, name := range rep.PhasesSkipped {
		fmt.Fprintf(w, "WARNING: phase %q skipped, no category row to style it\n", name)
	}
	fmt.Fprintf(w, "Saved %s\n", m.Output)
	fmt.Fprintf(w, "Rows written: %d (%d sections, %d phase headers)\n", rep.RowsWritten, len(rep.Sections), len(rep.Phases))
	return nil
}
