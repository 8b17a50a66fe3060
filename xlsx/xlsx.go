package xlsx

import (
	"strings"

	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// firstCustomNumFmt is the lowest number format id that is not built in.
const firstCustomNumFmt = 164

// cellXf returns the cell format record for styleID, or nil when the index is
// out of range.
func cellXf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	x := ss.X()
	if x == nil || x.CellXfs == nil || int(styleID) >= len(x.CellXfs.Xf) {
		return nil
	}
	return x.CellXfs.Xf[styleID]
}

// GetFontProps extracts the underlying font XML struct for a style ID.
func GetFontProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	fonts := ss.X().Fonts.Font
	if int(*xf.FontIdAttr) >= len(fonts) {
		return nil
	}
	return fonts[*xf.FontIdAttr]
}

// GetFillProps extracts the underlying fill XML struct for a style ID.
func GetFillProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Fill {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	fills := ss.X().Fills.Fill
	if int(*xf.FillIdAttr) >= len(fills) {
		return nil
	}
	return fills[*xf.FillIdAttr]
}

// GetBorderProps extracts the underlying border XML struct for a style ID.
func GetBorderProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Border {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	borders := ss.X().Borders.Border
	if int(*xf.BorderIdAttr) >= len(borders) {
		return nil
	}
	return borders[*xf.BorderIdAttr]
}

// GetNumFmt returns the number format id of a style and, for custom formats,
// its format code.
func GetNumFmt(ss spreadsheet.StyleSheet, styleID uint32) (uint32, string) {
	xf := cellXf(ss, styleID)
	if xf == nil || xf.NumFmtIdAttr == nil {
		return 0, ""
	}
	id := *xf.NumFmtIdAttr
	if id < firstCustomNumFmt || ss.X().NumFmts == nil {
		return id, ""
	}
	for _, nf := range ss.X().NumFmts.NumFmt {
		if nf != nil && nf.NumFmtIdAttr == id {
			return id, nf.FormatCodeAttr
		}
	}
	// unknown custom id, fall back to General
	return 0, ""
}

// GetAlignment returns the alignment record of a style, if any.
func GetAlignment(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_CellAlignment {
	xf := cellXf(ss, styleID)
	if xf == nil {
		return nil
	}
	return xf.Alignment
}

// ThemeColorToRGB resolves a theme color index (0-based) to an RGB hex string (e.g., "FFFFFF").
// It does not apply tint. Returns false if the index is invalid or the color cannot be resolved.
func ThemeColorToRGB(wb *spreadsheet.Workbook, themeIdx int) (string, bool) {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil || themes[0].ThemeElements.ClrScheme == nil {
		return "", false
	}
	scheme := themes[0].ThemeElements.ClrScheme
	slots := []*dml.CT_Color{
		scheme.Dk1, scheme.Lt1, scheme.Dk2, scheme.Lt2,
		scheme.Accent1, scheme.Accent2, scheme.Accent3,
		scheme.Accent4, scheme.Accent5, scheme.Accent6,
		scheme.Hlink, scheme.FolHlink,
	}
	if themeIdx < 0 || themeIdx >= len(slots) || slots[themeIdx] == nil {
		return "", false
	}
	clr := slots[themeIdx]
	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return clr.SrgbClr.ValAttr, true
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return *clr.SysClr.LastClrAttr, true
	}
	return "", false
}

// resolveColor returns a copy of c with a theme reference replaced by the
// ARGB value from wb's theme. Unresolvable colors are copied as-is.
func resolveColor(wb *spreadsheet.Workbook, c *sml.CT_Color) *sml.CT_Color {
	if c == nil {
		return nil
	}
	out := *c
	if out.ThemeAttr != nil && out.RgbAttr == nil {
		if hex, ok := ThemeColorToRGB(wb, int(*out.ThemeAttr)); ok {
			argb := "FF" + strings.ToUpper(hex)
			out.RgbAttr = &argb
			out.ThemeAttr = nil
		}
	}
	return &out
}

func cloneFont(wb *spreadsheet.Workbook, f *sml.CT_Font) *sml.CT_Font {
	if f == nil {
		return nil
	}
	out := *f
	out.Color = make([]*sml.CT_Color, len(f.Color))
	for i, c := range f.Color {
		out.Color[i] = resolveColor(wb, c)
	}
	return &out
}

func cloneFill(wb *spreadsheet.Workbook, f *sml.CT_Fill) *sml.CT_Fill {
	if f == nil {
		return nil
	}
	out := *f
	if f.PatternFill != nil {
		pf := *f.PatternFill
		pf.FgColor = resolveColor(wb, pf.FgColor)
		pf.BgColor = resolveColor(wb, pf.BgColor)
		out.PatternFill = &pf
	}
	return &out
}

func cloneBorder(wb *spreadsheet.Workbook, b *sml.CT_Border) *sml.CT_Border {
	if b == nil {
		return nil
	}
	out := *b
	for _, side := range []**sml.CT_BorderPr{&out.Left, &out.Right, &out.Top, &out.Bottom, &out.Diagonal} {
		if *side == nil {
			continue
		}
		pr := **side
		pr.Color = resolveColor(wb, pr.Color)
		*side = &pr
	}
	return &out
}

func cloneAlignment(a *sml.CT_CellAlignment) *sml.CT_CellAlignment {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}

// Flatten converts the XML style bundle into a CellStyle.
func (s Style) Flatten() CellStyle {
	var st CellStyle
	if f := s.Font; f != nil {
		if len(f.Name) > 0 {
			st.FontFamily = f.Name[0].ValAttr
		}
		if len(f.Sz) > 0 {
			st.FontSizePt = f.Sz[0].ValAttr
		}
		if len(f.Color) > 0 && f.Color[0] != nil && f.Color[0].RgbAttr != nil {
			st.FontColor = normalizeColor(*f.Color[0].RgbAttr)
		}
		if len(f.B) > 0 && f.B[0] != nil {
			st.Bold = f.B[0].ValAttr == nil || *f.B[0].ValAttr
		}
	}
	if f := s.Fill; f != nil && f.PatternFill != nil && f.PatternFill.FgColor != nil && f.PatternFill.FgColor.RgbAttr != nil {
		st.BackgroundColor = normalizeColor(*f.PatternFill.FgColor.RgbAttr)
	}
	if b := s.Border; b != nil && b.Left != nil && b.Left.Color != nil && b.Left.Color.RgbAttr != nil {
		st.BorderColor = normalizeColor(*b.Left.Color.RgbAttr)
	}
	if a := s.Alignment; a != nil {
		st.HorizontalAlign = a.HorizontalAttr.String()
		switch a.VerticalAttr {
		case sml.ST_VerticalAlignmentTop:
			st.VerticalAlign = "top"
		case sml.ST_VerticalAlignmentCenter:
			st.VerticalAlign = "middle"
		default:
			st.VerticalAlign = "bottom"
		}
		if a.WrapTextAttr != nil {
			st.WrapText = *a.WrapTextAttr
		}
		if a.IndentAttr != nil {
			st.IndentPx = float64(*a.IndentAttr) * 8.0
		}
	}
	return st
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// If the string is already 6 digits (or any other length), it is returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}
