package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/schema/soo/sml"
)

// Only the first three columns of a price list carry data: cost, factor and
// the item label.
const (
	ColCost   = 1
	ColFactor = 2
	ColLabel  = 3

	MaxCol = ColLabel
)

// DefaultColWidth is Excel's default column width in characters.
const DefaultColWidth = 8.43

// Kind tags the type held by a Value.
type Kind int

const (
	Empty Kind = iota
	String
	Number
	Bool
	Error
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Error:
		return "error"
	}
	return "empty"
}

// Value is a single cell value.
type Value struct {
	Kind   Kind
	Text   string // String and Error kinds
	Number float64
	Bool   bool
}

func StringValue(s string) Value   { return Value{Kind: String, Text: s} }
func NumberValue(f float64) Value { return Value{Kind: Number, Number: f} }
func BoolValue(b bool) Value      { return Value{Kind: Bool, Bool: b} }

// IsEmpty reports whether v holds nothing or only whitespace. Numeric zero is
// a value.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case Empty:
		return true
	case String, Error:
		return strings.TrimSpace(v.Text) == ""
	}
	return false
}

// IsFalsy reports whether v counts as blank in a truthiness test: nothing, an
// empty string, numeric zero or FALSE. Whitespace is a value here.
func (v Value) IsFalsy() bool {
	switch v.Kind {
	case Empty:
		return true
	case String:
		return v.Text == ""
	case Number:
		return v.Number == 0
	case Bool:
		return !v.Bool
	}
	return false
}

// IsFormula reports whether v is formula text as produced by Cell.Literal.
func (v Value) IsFormula() bool {
	return v.Kind == String && strings.HasPrefix(v.Text, "=")
}

func (v Value) String() string {
	switch v.Kind {
	case String, Error:
		return v.Text
	case Number:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case Bool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// Style is the formatting bundle of a cell. The XML parts belong to the
// workbook they were read from and must be cloned before being attached to
// another stylesheet. Theme colors are already resolved to RGB.
type Style struct {
	Font       *sml.CT_Font
	Fill       *sml.CT_Fill
	Border     *sml.CT_Border
	NumFmtID   uint32
	NumFmtCode string // set only for custom formats (id >= 164)
	Alignment  *sml.CT_CellAlignment
}

// IsZero reports whether s carries no formatting at all.
func (s Style) IsZero() bool {
	return s.Font == nil && s.Fill == nil && s.Border == nil && s.NumFmtID == 0 && s.NumFmtCode == "" && s.Alignment == nil
}

func (s Style) String() string {
	return fmt.Sprintf("Font: %t, Fill: %t, Border: %t, NumFmtID: %d, NumFmtCode: %q, Alignment: %t",
		s.Font != nil, s.Fill != nil, s.Border != nil, s.NumFmtID, s.NumFmtCode, s.Alignment != nil)
}

// Cell is one loaded cell. A single load exposes both the formula text and
// its cached result.
type Cell struct {
	Ref     string // e.g. "C12"
	Formula string // without the leading '='
	Value   Value  // stored literal, or the cached result of Formula
	Style   Style
}

// Literal is the cell as a formula-preserving reader sees it.
func (c Cell) Literal() Value {
	if c.Formula != "" {
		return StringValue("=" + c.Formula)
	}
	return c.Value
}

// Computed is the cell as a values-only reader sees it.
func (c Cell) Computed() Value {
	return c.Value
}

// Effective is the value to write when copying the cell: the computed value
// when there is one, otherwise the literal unless it is a formula.
func (c Cell) Effective() Value {
	if v := c.Computed(); v.Kind != Empty {
		return v
	}
	if lit := c.Literal(); !lit.IsFormula() {
		return lit
	}
	return Value{}
}

// IsEmpty reports whether the cell has neither a formula nor a value.
func (c Cell) IsEmpty() bool {
	return c.Formula == "" && c.Value.IsEmpty()
}

// Text is the trimmed literal text of the cell.
func (c Cell) Text() string {
	return strings.TrimSpace(c.Literal().String())
}

func (c Cell) String() string {
	return fmt.Sprintf("Ref: %s, Formula: %q, Value: %q (%s), Style: [%s]", c.Ref, c.Formula, c.Value.String(), c.Value.Kind, c.Style.String())
}

// Row is an output row: the cells of columns A to C in order.
type Row struct {
	Cells [MaxCol]Cell
}

// Label returns the text of column C.
func (r Row) Label() string {
	return r.Cells[ColLabel-1].Text()
}

// Sheet is a read-only view of one worksheet restricted to columns A to C.
// Rows and columns are 1-based.
type Sheet struct {
	Name      string
	MaxRow    int
	ColWidths map[int]float64 // custom widths in characters
	cells     map[int][MaxCol]Cell
}

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:      name,
		ColWidths: make(map[int]float64),
		cells:     make(map[int][MaxCol]Cell),
	}
}

// Cell returns the cell at row, col. Cells outside the loaded range are
// empty.
func (s *Sheet) Cell(row, col int) Cell {
	if col < 1 || col > MaxCol {
		return Cell{}
	}
	return s.cells[row][col-1]
}

// Set stores c at row, col and grows MaxRow as needed.
func (s *Sheet) Set(row, col int, c Cell) {
	if row < 1 || col < 1 || col > MaxCol {
		return
	}
	cells := s.cells[row]
	cells[col-1] = c
	s.cells[row] = cells
	if row > s.MaxRow {
		s.MaxRow = row
	}
}

// Row returns columns A to C of row.
func (s *Sheet) Row(row int) Row {
	return Row{Cells: s.cells[row]}
}

// ColWidth returns the custom width of col, or DefaultColWidth.
func (s *Sheet) ColWidth(col int) (float64, bool) {
	if w, ok := s.ColWidths[col]; ok && w > 0 {
		return w, true
	}
	return DefaultColWidth, false
}

func (s *Sheet) String() string {
	return fmt.Sprintf("Name: %s, MaxRow: %d, ColWidths: %v", s.Name, s.MaxRow, s.ColWidths)
}

// CellStyle is a flattened, renderer-friendly view of a Style.
type CellStyle struct {
	FontFamily      string  // e.g. "Calibri"
	FontSizePt      float64 // original size in points
	FontColor       string  // "RRGGBB"
	Bold            bool
	BackgroundColor string // "RRGGBB"
	BorderColor     string // we use left-border color as representative
	HorizontalAlign string // left|center|right|justify
	VerticalAlign   string // top|middle|bottom
	WrapText        bool
	IndentPx        float64 // computed indent in pixels
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %f, FontColor: %s, Bold: %t, BackgroundColor: %s, BorderColor: %s, HorizontalAlign: %s, VerticalAlign: %s, WrapText: %t, IndentPx: %f", s.FontFamily, s.FontSizePt, s.FontColor, s.Bold, s.BackgroundColor, s.BorderColor, s.HorizontalAlign, s.VerticalAlign, s.WrapText, s.IndentPx)
}
