// Command pricelist reorganizes the price-list workbook by construction
// phase and exports it for the web price page.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aerissecure/pricelist"
)

var (
	verbose      bool
	manifestPath string
	inPath       string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pricelist",
	Short: "Reorganize and publish the price-list workbook",
	Long: `pricelist works on the price-list workbook (.xlsx).

Commands:
  reorganize  Copy sections into construction-phase order with phase headers.
  export      Write the price list as the JSON (or YAML) catalog.
  preview     Render a workbook as an HTML table for review.

The section order comes from a manifest. The built-in one is used unless
--manifest points to a YAML file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return errors.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Path to a YAML manifest (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&inPath, "in", "", "Source workbook (default: manifest source)")
}

// loadManifest returns the manifest selected by --manifest with --in applied.
func loadManifest() (*pricelist.Manifest, error) {
	m := pricelist.DefaultManifest()
	if manifestPath != "" {
		var err error
		if m, err = pricelist.LoadManifest(manifestPath); err != nil {
			return nil, err
		}
	}
	if inPath != "" {
		m.Source = inPath
	}
	return m, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
