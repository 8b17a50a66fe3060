package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerissecure/pricelist/xlsx"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview [workbook.xlsx]",
	Short: "Render a workbook as an HTML table",
	Long: `Renders columns A to C of a workbook, with fonts, fills, borders and
alignment, as a standalone HTML page. Without an argument the manifest's
output workbook is rendered, so a reorganized list can be checked before it
is published.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "preview.html", "Output HTML file, - for stdout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	path := m.Output
	if inPath != "" {
		path = inPath
	}
	if len(args) == 1 {
		path = args[0]
	}
	sheet, err := xlsx.Open(path, "")
	if err != nil {
		return err
	}
	page := xlsx.RenderHTML(sheet)

	if previewOut == "-" {
		_, err := cmd.OutOrStdout().Write([]byte(page))
		return err
	}
	if err := os.WriteFile(previewOut, []byte(page), 0644); err != nil {
		return errors.Wrapf(err, "write %q", previewOut)
	}
	logger.Info("wrote preview", zap.String("source", path), zap.String("output", previewOut))
	return nil
}
