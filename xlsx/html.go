package xlsx

import (
	"fmt"
	"html"
	"strings"
)

// pxPerChar converts column widths in characters to pixels.
const pxPerChar = 8.3

// tally counts how often each value of a style property occurs.
type tally[K comparable] map[K]int

// majority returns the most common key when it covers more than half of
// total cells, otherwise the zero value.
func (t tally[K]) majority(total int) K {
	var best K
	max := 0
	for k, n := range t {
		if n > max {
			best, max = k, n
		}
	}
	if max <= total/2 {
		var zero K
		return zero
	}
	return best
}

// RenderHTML renders sheets as HTML tables. Properties shared by most cells
// become the table default; every remaining combination gets its own class.
func RenderHTML(sheets ...*Sheet) string {
	var (
		family  = tally[string]{}
		size    = tally[float64]{}
		color   = tally[string]{}
		bg      = tally[string]{}
		border  = tally[string]{}
		hAlign  = tally[string]{}
		vAlign  = tally[string]{}
		classes = map[CellStyle]string{}
		order   []CellStyle
		styled  int
	)
	for _, s := range sheets {
		for r := 1; r <= s.MaxRow; r++ {
			for _, c := range s.Row(r).Cells {
				if c.IsEmpty() && c.Style.IsZero() {
					continue
				}
				st := c.Style.Flatten()
				styled++
				family[st.FontFamily]++
				size[st.FontSizePt]++
				color[st.FontColor]++
				bg[st.BackgroundColor]++
				border[st.BorderColor]++
				hAlign[st.HorizontalAlign]++
				vAlign[st.VerticalAlign]++
				if _, ok := classes[st]; !ok {
					classes[st] = fmt.Sprintf("cellstyle%d", len(order)+1)
					order = append(order, st)
				}
			}
		}
	}

	def := CellStyle{
		FontFamily:      family.majority(styled),
		FontSizePt:      size.majority(styled),
		FontColor:       color.majority(styled),
		BackgroundColor: bg.majority(styled),
		BorderColor:     border.majority(styled),
		HorizontalAlign: hAlign.majority(styled),
		VerticalAlign:   vAlign.majority(styled),
	}

	var b strings.Builder
	b.WriteString("<style>\n")
	b.WriteString(".table { border-collapse: collapse; table-layout: fixed; margin-bottom: 2em; }\n")
	fmt.Fprintf(&b, ".table td { padding: 4px 8px; white-space:nowrap; overflow:hidden; %s}\n", styleToCSS(def, CellStyle{}))
	b.WriteString(".sheet { margin-bottom: 2em; }\n")
	for _, st := range order {
		if css := styleToCSS(st, def); css != "" {
			fmt.Fprintf(&b, ".%s { %s}\n", classes[st], css)
		}
	}
	b.WriteString("</style>\n")

	for _, s := range sheets {
		widths := make([]float64, MaxCol)
		total := 0.0
		for c := 1; c <= MaxCol; c++ {
			w, _ := s.ColWidth(c)
			widths[c-1] = w * pxPerChar
			total += widths[c-1]
		}
		fmt.Fprintf(&b, "<div class=\"sheet\" data-name=\"%s\">\n", html.EscapeString(s.Name))
		fmt.Fprintf(&b, "<table class=\"table\" style=\"width:%.0fpx;\">\n  <colgroup>\n", total)
		for _, w := range widths {
			fmt.Fprintf(&b, "    <col style=\"width:%.0fpx;\">\n", w)
		}
		b.WriteString("  </colgroup>\n")
		for r := 1; r <= s.MaxRow; r++ {
			b.WriteString("  <tr>\n")
			for _, c := range s.Row(r).Cells {
				if c.IsEmpty() && c.Style.IsZero() {
					b.WriteString("    <td></td>\n")
					continue
				}
				text := html.EscapeString(c.Effective().String())
				// explicit line breaks are stored as \n
				text = strings.ReplaceAll(text, "\n", "<br>")
				fmt.Fprintf(&b, "    <td data-cell=\"%s\" class=\"%s\">%s</td>\n", c.Ref, classes[c.Style.Flatten()], text)
			}
			b.WriteString("  </tr>\n")
		}
		b.WriteString("</table>\n</div>\n")
	}
	return b.String()
}

// styleToCSS returns the CSS for the properties of s that differ from def.
func styleToCSS(s, def CellStyle) string {
	var b strings.Builder
	if s.FontFamily != "" && s.FontFamily != def.FontFamily {
		fmt.Fprintf(&b, "font-family:'%s'; ", s.FontFamily)
	}
	if s.FontSizePt > 0 && s.FontSizePt != def.FontSizePt {
		fmt.Fprintf(&b, "font-size:%.1fpt; ", s.FontSizePt)
	}
	if s.FontColor != "" && s.FontColor != def.FontColor {
		fmt.Fprintf(&b, "color:#%s; ", s.FontColor)
	}
	if s.Bold && !def.Bold {
		b.WriteString("font-weight:bold; ")
	}
	if s.BackgroundColor != "" && s.BackgroundColor != def.BackgroundColor {
		fmt.Fprintf(&b, "background-color:#%s; ", s.BackgroundColor)
	}
	if s.BorderColor != "" && s.BorderColor != def.BorderColor {
		fmt.Fprintf(&b, "border:1px solid #%s; ", s.BorderColor)
	}
	if s.HorizontalAlign != "" && s.HorizontalAlign != def.HorizontalAlign {
		switch s.HorizontalAlign {
		case "center", "centerContinuous", "distributed":
			b.WriteString("text-align:center; ")
		case "right":
			b.WriteString("text-align:right; ")
		case "justify":
			b.WriteString("text-align:justify; ")
		default:
			b.WriteString("text-align:left; ")
		}
	}
	if s.VerticalAlign != "" && s.VerticalAlign != def.VerticalAlign {
		fmt.Fprintf(&b, "vertical-align:%s; ", s.VerticalAlign)
	}
	if s.WrapText && !def.WrapText {
		b.WriteString("white-space:normal; ")
	}
	if s.IndentPx > 0 {
		side := "left"
		if s.HorizontalAlign == "right" {
			side = "right"
		}
		fmt.Fprintf(&b, "padding-%s:%.0fpx; ", side, s.IndentPx)
	}
	return b.String()
}
