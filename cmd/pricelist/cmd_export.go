package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerissecure/pricelist"
	"github.com/aerissecure/pricelist/xlsx"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the price list as a JSON or YAML catalog",
	Long: `Groups the workbook's items into categories and sections, with notes and
the "Last Updated" line, and writes them as the catalog the price page
reads.

Examples:
  pricelist export -o public/price-data.json
  pricelist export --format yaml --in prices.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "public/price-data.json", "Output file, - for stdout")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	sheet, err := xlsx.Open(m.Source, m.Sheet)
	if err != nil {
		return err
	}
	catalog := pricelist.BuildCatalog(sheet, m.Categories(), m.CatalogTitle)

	if exportOut == "-" {
		if err := catalog.Write(cmd.OutOrStdout(), pricelist.Format(exportFormat)); err != nil {
			return err
		}
	} else if err := writeCatalog(catalog, exportOut, pricelist.Format(exportFormat)); err != nil {
		return err
	}
	logger.Info("exported catalog",
		zap.String("output", exportOut),
		zap.Int("categories", len(catalog.Categories)),
		zap.String("last_updated", catalog.LastUpdated))
	return nil
}

func writeCatalog(c *pricelist.Catalog, path string, format pricelist.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %q", path)
	}
	if err := c.Write(f, format); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %q", path)
}
