package pricelist

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aerissecure/pricelist/xlsx"
)

// Option configures an Assembler or a Reorganize run.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// SectionCopy records one copied section.
type SectionCopy struct {
	Region string
	Name   string
	Rows   int
}

// Report summarizes an assembly.
type Report struct {
	RowsWritten       int
	HeaderRow         int
	LastUpdatedRow    int // 0 when absent
	CategoriesFound   []string
	CategoriesMissing []string
	Phases            []string
	PhasesSkipped     []string
	Sections          []SectionCopy
	SectionsMissing   []string
}

// Result is the outcome of Assemble: the output rows and what happened.
type Result struct {
	Builder *xlsx.Builder
	Report  Report
}

// Assembler emits a source sheet's rows in manifest order.
type Assembler struct {
	manifest *Manifest
	log      *zap.Logger
	upper    cases.Caser
	phase    *phaseStyle
}

// NewAssembler returns an Assembler for m.
func NewAssembler(m *Manifest, opts ...Option) *Assembler {
	o := buildOptions(opts)
	return &Assembler{
		manifest: m,
		log:      o.log,
		upper:    cases.Upper(language.Und),
		phase:    newPhaseStyle(),
	}
}

// Assemble builds the reorganized rows of sheet. Missing sections and
// categories are reported and skipped; the output is still usable.
func (a *Assembler) Assemble(sheet *xlsx.Sheet) (*Result, error) {
	if sheet == nil {
		return nil, errors.New("assemble: nil sheet")
	}
	loc := NewLocator(sheet)
	out := xlsx.NewBuilder(a.manifest.Title, a.log)
	res := &Result{Builder: out}
	rep := &res.Report

	rep.HeaderRow = loc.HeaderRow()
	out.Append(CopyRow(sheet, rep.HeaderRow))

	if row, ok := loc.Find("Last Updated", MatchContains); ok {
		rep.LastUpdatedRow = row
		out.Append(CopyRow(sheet, row))
	}

	categories := make(map[string]int, len(a.manifest.Regions))
	for _, r := range a.manifest.Regions {
		if row, ok := loc.Find(r.Category, MatchExact); ok {
			categories[r.Category] = row
		}
	}

	for _, region := range a.manifest.Regions {
		row, ok := categories[region.Category]
		if ok {
			a.log.Info("found category", zap.String("category", region.Category), zap.Int("row", row))
			rep.CategoriesFound = append(rep.CategoriesFound, region.Category)
			cat := CopyRow(sheet, row)
			label := &cat.Cells[xlsx.ColLabel-1]
			label.Value = xlsx.StringValue(a.upper.String(label.Text()))
			out.Append(cat)
		} else {
			a.log.Error("category not found", zap.String("category", region.Category))
			rep.CategoriesMissing = append(rep.CategoriesMissing, region.Category)
		}

		template, hasTemplate := a.phaseTemplate(sheet, region, categories)
		for _, d := range region.Directives {
			switch d := d.(type) {
			case Phase:
				if !hasTemplate {
					a.log.Warn("skipping phase header, no category row to style it after",
						zap.String("category", region.Category), zap.String("phase", d.Name))
					rep.PhasesSkipped = append(rep.PhasesSkipped, d.Name)
					continue
				}
				out.Append(a.phase.row(template, d.Name, region.PhaseColor))
				rep.Phases = append(rep.Phases, d.Name)
				a.log.Debug("created phase header", zap.String("phase", d.Name), zap.Int("row", out.Len()))
			case Section:
				rows := loc.Section(d.Name)
				if len(rows) == 0 {
					a.log.Warn("section not found", zap.String("category", region.Category), zap.String("section", d.Name))
					rep.SectionsMissing = append(rep.SectionsMissing, d.Name)
					continue
				}
				a.log.Info("copying section", zap.String("section", d.Name), zap.Int("rows", len(rows)))
				for _, src := range rows {
					out.Append(CopyRow(sheet, src))
				}
				rep.Sections = append(rep.Sections, SectionCopy{Region: region.Category, Name: d.Name, Rows: len(rows)})
			}
		}
	}

	a.copyWidths(sheet, out)
	rep.RowsWritten = out.Len()
	return res, nil
}

// phaseTemplate returns the category row a region's phase headers are styled
// after: its own, or the first found among its fallbacks.
func (a *Assembler) phaseTemplate(sheet *xlsx.Sheet, region Region, categories map[string]int) (xlsx.Row, bool) {
	if row, ok := categories[region.Category]; ok {
		return CopyRow(sheet, row), true
	}
	loc := NewLocator(sheet)
	for _, name := range region.PhaseFallback {
		row, ok := categories[name]
		if !ok {
			row, ok = loc.Find(name, MatchExact)
		}
		if ok {
			return CopyRow(sheet, row), true
		}
	}
	return xlsx.Row{}, false
}

// copyWidths carries the custom widths of columns A to C over and widens the
// label column so phase headers fit.
func (a *Assembler) copyWidths(sheet *xlsx.Sheet, out *xlsx.Builder) {
	for col := 1; col <= xlsx.MaxCol; col++ {
		if w, ok := sheet.ColWidth(col); ok {
			out.SetColWidth(col, w)
		}
	}
	w, _ := sheet.ColWidth(xlsx.ColLabel)
	out.SetColWidth(xlsx.ColLabel, math.Max(w, a.manifest.MinLabelWidth))
}
