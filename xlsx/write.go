package xlsx

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
	"go.uber.org/zap"
)

// Builder is an append-only buffer of output rows. The row cursor only moves
// forward; rows are materialized into a workbook by Workbook or Save.
type Builder struct {
	title  string
	rows   []Row
	widths map[int]float64
	log    *zap.Logger
}

// NewBuilder returns a builder for a single-sheet workbook titled title.
func NewBuilder(title string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		title:  title,
		widths: make(map[int]float64),
		log:    log,
	}
}

// Append adds r after the last row and returns its 1-based row number.
func (b *Builder) Append(r Row) int {
	b.rows = append(b.rows, r)
	return len(b.rows)
}

// Len is the number of rows appended so far.
func (b *Builder) Len() int { return len(b.rows) }

// Next is the row number the next Append will write to.
func (b *Builder) Next() int { return len(b.rows) + 1 }

// Rows returns the appended rows in order.
func (b *Builder) Rows() []Row { return b.rows }

// SetColWidth sets the width of col in characters.
func (b *Builder) SetColWidth(col int, width float64) {
	b.widths[col] = width
}

// ColWidth returns the width set for col, if any.
func (b *Builder) ColWidth(col int) (float64, bool) {
	w, ok := b.widths[col]
	return w, ok
}

// Save writes the rows to a new workbook at path.
func (b *Builder) Save(path string) error {
	wb, err := b.Workbook()
	if err != nil {
		return err
	}
	if err := wb.SaveToFile(path); err != nil {
		return errors.Wrapf(err, "save %q", path)
	}
	return nil
}

// Workbook materializes the rows into a new workbook with one sheet.
func (b *Builder) Workbook() (*spreadsheet.Workbook, error) {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	if b.title != "" {
		sheet.SetName(b.title)
	}

	reg := newStyleRegistry(wb.StyleSheet.X(), b.log)
	for i, r := range b.rows {
		rowNum := uint32(i + 1)
		row := sheet.Row(rowNum)
		for col := 1; col <= MaxCol; col++ {
			src := r.Cells[col-1]
			colName := reference.IndexToColumn(uint32(col - 1))
			v := src.Effective()
			if v.Kind == Empty && src.Style.IsZero() {
				continue
			}
			cell := row.Cell(colName)
			setValue(cell, v)
			if !src.Style.IsZero() {
				idx := reg.register(src.Style, colName+strconv.Itoa(int(rowNum)))
				cell.X().SAttr = unioffice.Uint32(idx)
			}
		}
	}

	if ss := wb.StyleSheet.X(); ss.NumFmts != nil && len(ss.NumFmts.NumFmt) == 0 {
		ss.NumFmts = nil
	}

	for col := 1; col <= MaxCol; col++ {
		w, ok := b.widths[col]
		if !ok {
			continue
		}
		c := sheet.Column(uint32(col))
		c.X().WidthAttr = unioffice.Float64(w)
		c.X().CustomWidthAttr = unioffice.Bool(true)
	}
	return wb, nil
}

func setValue(cell spreadsheet.Cell, v Value) {
	switch v.Kind {
	case String, Error:
		cell.SetString(v.Text)
	case Number:
		cell.SetNumber(v.Number)
	case Bool:
		cell.SetBool(v.Bool)
	}
}

type styleKey struct {
	font   *sml.CT_Font
	fill   *sml.CT_Fill
	border *sml.CT_Border
	numFmt uint32
	code   string
	align  *sml.CT_CellAlignment
}

// styleRegistry adds style bundles to a destination stylesheet, one cell
// format per distinct bundle.
type styleRegistry struct {
	ss      *sml.StyleSheet
	xfs     map[styleKey]uint32
	fonts   map[*sml.CT_Font]uint32
	fills   map[*sml.CT_Fill]uint32
	borders map[*sml.CT_Border]uint32
	codes   map[string]uint32
	nextFmt uint32
	log     *zap.Logger
}

func newStyleRegistry(ss *sml.StyleSheet, log *zap.Logger) *styleRegistry {
	ensureStyleDefaults(ss)
	r := &styleRegistry{
		ss:      ss,
		xfs:     make(map[styleKey]uint32),
		fonts:   make(map[*sml.CT_Font]uint32),
		fills:   make(map[*sml.CT_Fill]uint32),
		borders: make(map[*sml.CT_Border]uint32),
		codes:   make(map[string]uint32),
		nextFmt: firstCustomNumFmt,
		log:     log,
	}
	for _, nf := range ss.NumFmts.NumFmt {
		if nf != nil && nf.NumFmtIdAttr >= r.nextFmt {
			r.nextFmt = nf.NumFmtIdAttr + 1
		}
	}
	return r
}

// ensureStyleDefaults makes sure the collections a cell format points into
// exist, with the default entries at index 0 (and the gray125 fill at 1).
func ensureStyleDefaults(ss *sml.StyleSheet) {
	if ss.Fonts == nil {
		ss.Fonts = sml.NewCT_Fonts()
	}
	if len(ss.Fonts.Font) == 0 {
		f := sml.NewCT_Font()
		f.Sz = []*sml.CT_FontSize{{ValAttr: 11}}
		f.Name = []*sml.CT_FontName{{ValAttr: "Calibri"}}
		ss.Fonts.Font = append(ss.Fonts.Font, f)
	}
	if ss.Fills == nil {
		ss.Fills = sml.NewCT_Fills()
	}
	for len(ss.Fills.Fill) < 2 {
		f := sml.NewCT_Fill()
		f.PatternFill = sml.NewCT_PatternFill()
		f.PatternFill.PatternTypeAttr = sml.ST_PatternTypeNone
		if len(ss.Fills.Fill) == 1 {
			f.PatternFill.PatternTypeAttr = sml.ST_PatternTypeGray125
		}
		ss.Fills.Fill = append(ss.Fills.Fill, f)
	}
	if ss.Borders == nil {
		ss.Borders = sml.NewCT_Borders()
	}
	if len(ss.Borders.Border) == 0 {
		ss.Borders.Border = append(ss.Borders.Border, sml.NewCT_Border())
	}
	if ss.NumFmts == nil {
		ss.NumFmts = sml.NewCT_NumFmts()
	}
	if ss.CellXfs == nil {
		ss.CellXfs = sml.NewCT_CellXfs()
	}
	if len(ss.CellXfs.Xf) == 0 {
		xf := sml.NewCT_Xf()
		xf.NumFmtIdAttr = unioffice.Uint32(0)
		xf.FontIdAttr = unioffice.Uint32(0)
		xf.FillIdAttr = unioffice.Uint32(0)
		xf.BorderIdAttr = unioffice.Uint32(0)
		ss.CellXfs.Xf = append(ss.CellXfs.Xf, xf)
	}
	syncCounts(ss)
}

func syncCounts(ss *sml.StyleSheet) {
	ss.Fonts.CountAttr = unioffice.Uint32(uint32(len(ss.Fonts.Font)))
	ss.Fills.CountAttr = unioffice.Uint32(uint32(len(ss.Fills.Fill)))
	ss.Borders.CountAttr = unioffice.Uint32(uint32(len(ss.Borders.Border)))
	ss.CellXfs.CountAttr = unioffice.Uint32(uint32(len(ss.CellXfs.Xf)))
	if len(ss.NumFmts.NumFmt) > 0 {
		ss.NumFmts.CountAttr = unioffice.Uint32(uint32(len(ss.NumFmts.NumFmt)))
	}
}

// register returns the cell format index for st, creating it on first use.
// Each attribute is applied on its own: one that cannot be copied is logged
// and left at the default while the others still apply.
func (r *styleRegistry) register(st Style, ref string) uint32 {
	key := styleKey{st.Font, st.Fill, st.Border, st.NumFmtID, st.NumFmtCode, st.Alignment}
	if idx, ok := r.xfs[key]; ok {
		return idx
	}

	xf := sml.NewCT_Xf()
	xf.NumFmtIdAttr = unioffice.Uint32(0)
	xf.FontIdAttr = unioffice.Uint32(0)
	xf.FillIdAttr = unioffice.Uint32(0)
	xf.BorderIdAttr = unioffice.Uint32(0)

	r.apply(ref, "font", st.Font != nil, func() {
		xf.FontIdAttr = unioffice.Uint32(r.font(st.Font))
		xf.ApplyFontAttr = unioffice.Bool(true)
	})
	r.apply(ref, "border", st.Border != nil, func() {
		xf.BorderIdAttr = unioffice.Uint32(r.border(st.Border))
		xf.ApplyBorderAttr = unioffice.Bool(true)
	})
	r.apply(ref, "fill", st.Fill != nil, func() {
		xf.FillIdAttr = unioffice.Uint32(r.fill(st.Fill))
		xf.ApplyFillAttr = unioffice.Bool(true)
	})
	r.apply(ref, "number_format", st.NumFmtID != 0 || st.NumFmtCode != "", func() {
		xf.NumFmtIdAttr = unioffice.Uint32(r.numFmt(st.NumFmtID, st.NumFmtCode))
		xf.ApplyNumberFormatAttr = unioffice.Bool(true)
	})
	r.apply(ref, "alignment", st.Alignment != nil, func() {
		a := *st.Alignment
		xf.Alignment = &a
		xf.ApplyAlignmentAttr = unioffice.Bool(true)
	})

	r.ss.CellXfs.Xf = append(r.ss.CellXfs.Xf, xf)
	syncCounts(r.ss)
	idx := uint32(len(r.ss.CellXfs.Xf) - 1)
	r.xfs[key] = idx
	return idx
}

func (r *styleRegistry) apply(ref, attr string, present bool, fn func()) {
	if !present {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Debug("skipping style attribute",
				zap.String("cell", ref),
				zap.String("attribute", attr),
				zap.String("reason", fmt.Sprint(rec)))
		}
	}()
	fn()
}

func (r *styleRegistry) font(f *sml.CT_Font) uint32 {
	if idx, ok := r.fonts[f]; ok {
		return idx
	}
	c := *f
	r.ss.Fonts.Font = append(r.ss.Fonts.Font, &c)
	idx := uint32(len(r.ss.Fonts.Font) - 1)
	r.fonts[f] = idx
	return idx
}

func (r *styleRegistry) fill(f *sml.CT_Fill) uint32 {
	if idx, ok := r.fills[f]; ok {
		return idx
	}
	c := *f
	if f.PatternFill != nil {
		pf := *f.PatternFill
		c.PatternFill = &pf
	}
	r.ss.Fills.Fill = append(r.ss.Fills.Fill, &c)
	idx := uint32(len(r.ss.Fills.Fill) - 1)
	r.fills[f] = idx
	return idx
}

func (r *styleRegistry) border(b *sml.CT_Border) uint32 {
	if idx, ok := r.borders[b]; ok {
		return idx
	}
	c := *b
	r.ss.Borders.Border = append(r.ss.Borders.Border, &c)
	idx := uint32(len(r.ss.Borders.Border) - 1)
	r.borders[b] = idx
	return idx
}

// numFmt returns id for built-in formats and allocates a destination id for
// custom format codes.
func (r *styleRegistry) numFmt(id uint32, code string) uint32 {
	if code == "" {
		if id >= firstCustomNumFmt {
			panic(fmt.Sprintf("custom number format %d has no format code", id))
		}
		return id
	}
	if idx, ok := r.codes[code]; ok {
		return idx
	}
	nf := sml.NewCT_NumFmt()
	nf.NumFmtIdAttr = r.nextFmt
	nf.FormatCodeAttr = code
	r.ss.NumFmts.NumFmt = append(r.ss.NumFmts.NumFmt, nf)
	r.codes[code] = r.nextFmt
	r.nextFmt++
	return nf.NumFmtIdAttr
}
