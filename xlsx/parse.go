package xlsx

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ErrNoSheet is returned when a workbook has no worksheet, or none with the
// requested name.
var ErrNoSheet = errors.New("no such sheet")

// Open reads the workbook at path and loads one worksheet from it. An empty
// sheetName selects the first sheet.
func Open(path, sheetName string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	wb, err := spreadsheet.Read(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "read workbook %q", path)
	}
	return ParseSheet(wb, sheetName)
}

// ParseSheet loads columns A to C of one worksheet of wb. Formula text, cached
// results and styles all come from the same read.
func ParseSheet(wb *spreadsheet.Workbook, sheetName string) (*Sheet, error) {
	ws, err := pickSheet(wb, sheetName)
	if err != nil {
		return nil, err
	}

	sheet := NewSheet(ws.Name())
	for _, cols := range ws.X().Cols {
		for _, col := range cols.Col {
			if col == nil || col.WidthAttr == nil {
				continue
			}
			if col.CustomWidthAttr != nil && !*col.CustomWidthAttr {
				continue
			}
			for c := int(col.MinAttr); c <= int(col.MaxAttr) && c <= MaxCol; c++ {
				sheet.ColWidths[c] = *col.WidthAttr
			}
		}
	}

	styles := make(map[uint32]Style)
	for _, row := range ws.Rows() {
		rowIdx := int(row.RowNumber())
		if rowIdx > sheet.MaxRow {
			sheet.MaxRow = rowIdx
		}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName)) + 1
			if colIdx > MaxCol {
				continue
			}
			c := Cell{
				Ref:   colName + strconv.Itoa(rowIdx),
				Value: cellValue(cell),
			}
			if f := cell.X().F; f != nil && f.Content != "" {
				c.Formula = f.Content
			}
			if sid := cell.X().SAttr; sid != nil {
				st, ok := styles[*sid]
				if !ok {
					st = resolveStyle(wb, *sid)
					styles[*sid] = st
				}
				c.Style = st
			}
			sheet.Set(rowIdx, colIdx, c)
		}
	}
	return sheet, nil
}

func pickSheet(wb *spreadsheet.Workbook, name string) (spreadsheet.Sheet, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return spreadsheet.Sheet{}, ErrNoSheet
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s.Name() == name {
			return s, nil
		}
	}
	return spreadsheet.Sheet{}, errors.Wrap(ErrNoSheet, name)
}

// cellValue decodes the stored value of a cell. For formula cells this is the
// result cached by the application that last saved the file.
func cellValue(cell spreadsheet.Cell) Value {
	x := cell.X()
	switch x.TAttr {
	case sml.ST_CellTypeS, sml.ST_CellTypeInlineStr, sml.ST_CellTypeStr:
		s := cell.GetString()
		if s == "" && x.V == nil && x.Is == nil {
			return Value{}
		}
		return StringValue(s)
	case sml.ST_CellTypeB:
		if x.V == nil {
			return Value{}
		}
		return BoolValue(*x.V == "1" || *x.V == "true")
	case sml.ST_CellTypeE:
		if x.V == nil {
			return Value{}
		}
		return Value{Kind: Error, Text: *x.V}
	}
	if x.V == nil || *x.V == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(*x.V, 64)
	if err != nil {
		return StringValue(*x.V)
	}
	return NumberValue(f)
}

// resolveStyle copies the style bundle of styleID out of wb, resolving theme
// colors so the bundle can be used in another workbook.
func resolveStyle(wb *spreadsheet.Workbook, styleID uint32) Style {
	ss := wb.StyleSheet
	id, code := GetNumFmt(ss, styleID)
	return Style{
		Font:       cloneFont(wb, GetFontProps(ss, styleID)),
		Fill:       cloneFill(wb, GetFillProps(ss, styleID)),
		Border:     cloneBorder(wb, GetBorderProps(ss, styleID)),
		NumFmtID:   id,
		NumFmtCode: code,
		Alignment:  cloneAlignment(GetAlignment(ss, styleID)),
	}
}
