package pricelist

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aerissecure/pricelist/xlsx"
)

// Reorganize reads m.Source, assembles its rows in manifest order and saves
// the result to m.Output. Only failing to read the source or write the
// output is an error.
func Reorganize(m *Manifest, opts ...Option) (*Report, error) {
	o := buildOptions(opts)

	sheet, err := xlsx.Open(m.Source, m.Sheet)
	if err != nil {
		return nil, errors.Wrap(err, "load source")
	}
	o.log.Debug("loaded source", zap.String("path", m.Source), zap.String("sheet", sheet.Name), zap.Int("rows", sheet.MaxRow))

	res, err := NewAssembler(m, opts...).Assemble(sheet)
	if err != nil {
		return nil, err
	}
	if err := res.Builder.Save(m.Output); err != nil {
		return nil, errors.Wrap(err, "write output")
	}
	o.log.Info("reorganization complete", zap.String("output", m.Output), zap.Int("rows", res.Report.RowsWritten))
	return &res.Report, nil
}
