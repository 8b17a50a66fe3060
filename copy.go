package pricelist

import (
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/schema/soo/sml"

	"github.com/aerissecure/pricelist/xlsx"
)

// CopyRow copies columns A to C of a source row. Each output cell takes the
// source's effective value (cached result over formula text) and its style.
func CopyRow(sheet *xlsx.Sheet, row int) xlsx.Row {
	var out xlsx.Row
	for col := 1; col <= xlsx.MaxCol; col++ {
		src := sheet.Cell(row, col)
		out.Cells[col-1] = xlsx.Cell{
			Ref:   src.Ref,
			Value: src.Effective(),
			Style: src.Style,
		}
	}
	return out
}

// phaseStyle holds the fixed formatting of synthesized phase headers. The
// font and alignment are shared by all regions; fills are per color.
type phaseStyle struct {
	font  *sml.CT_Font
	align *sml.CT_CellAlignment
	fills map[string]*sml.CT_Fill
}

func newPhaseStyle() *phaseStyle {
	font := sml.NewCT_Font()
	font.Name = []*sml.CT_FontName{{ValAttr: "Arial"}}
	font.Sz = []*sml.CT_FontSize{{ValAttr: 14}}
	font.B = []*sml.CT_BooleanProperty{{ValAttr: unioffice.Bool(true)}}
	font.Color = []*sml.CT_Color{{RgbAttr: unioffice.String("FFFFFFFF")}}

	align := sml.NewCT_CellAlignment()
	align.HorizontalAttr = sml.ST_HorizontalAlignmentCenter
	align.VerticalAttr = sml.ST_VerticalAlignmentCenter

	return &phaseStyle{font: font, align: align, fills: make(map[string]*sml.CT_Fill)}
}

func (p *phaseStyle) fill(rgb string) *sml.CT_Fill {
	argb := "FF" + strings.ToUpper(strings.TrimPrefix(rgb, "#"))
	if f, ok := p.fills[argb]; ok {
		return f
	}
	f := sml.NewCT_Fill()
	f.PatternFill = sml.NewCT_PatternFill()
	f.PatternFill.PatternTypeAttr = sml.ST_PatternTypeSolid
	f.PatternFill.FgColor = &sml.CT_Color{RgbAttr: unioffice.String(argb)}
	f.PatternFill.BgColor = &sml.CT_Color{RgbAttr: unioffice.String(argb)}
	p.fills[argb] = f
	return f
}

// row builds a phase header from a template row: A and B keep the template
// style with no value, C shows the phase name with the fixed font, fill and
// alignment over the template's border and number format.
func (p *phaseStyle) row(template xlsx.Row, name, color string) xlsx.Row {
	out := template
	for i := range out.Cells {
		out.Cells[i].Value = xlsx.Value{}
	}
	label := &out.Cells[xlsx.ColLabel-1]
	label.Value = xlsx.StringValue(name)
	label.Style.Font = p.font
	label.Style.Fill = p.fill(color)
	label.Style.Alignment = p.align
	return out
}
