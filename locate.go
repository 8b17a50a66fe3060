package pricelist

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aerissecure/pricelist/xlsx"
)

// MatchMode selects how Locator.Find compares labels.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
)

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// headerScanRows bounds the search for the Cost/Factor/Item header row.
const headerScanRows = 10

// Locator finds rows of a price-list sheet by the label in column C.
type Locator struct {
	sheet *xlsx.Sheet
	fold  cases.Caser
}

// NewLocator returns a Locator over sheet.
func NewLocator(sheet *xlsx.Sheet) *Locator {
	return &Locator{sheet: sheet, fold: cases.Fold()}
}

// Find returns the first row, top to bottom, whose label matches. Labels are
// trimmed and compared case-insensitively.
func (l *Locator) Find(label string, mode MatchMode) (int, bool) {
	want := l.fold.String(strings.TrimSpace(label))
	if want == "" {
		return 0, false
	}
	for row := 1; row <= l.sheet.MaxRow; row++ {
		c := l.sheet.Cell(row, xlsx.ColLabel)
		if c.IsEmpty() {
			continue
		}
		got := l.fold.String(c.Text())
		switch mode {
		case MatchExact:
			if got == want {
				return row, true
			}
		case MatchContains:
			if strings.Contains(got, want) {
				return row, true
			}
		}
	}
	return 0, false
}

// HeaderRow returns the first of the top rows whose column A reads "Cost" or
// whose column C reads "Item". It falls back to row 1.
func (l *Locator) HeaderRow() int {
	for row := 1; row <= headerScanRows && row <= l.sheet.MaxRow; row++ {
		if l.sheet.Cell(row, xlsx.ColCost).Text() == "Cost" || l.sheet.Cell(row, xlsx.ColLabel).Text() == "Item" {
			return row
		}
	}
	return 1
}

// Section returns the rows of the named section: its header row followed by
// every row up to the next header. Nil means the header was not found.
//
// Columns A and C are tested for truthiness, so a cost of 0 reads as no
// cost. A row with a label but no cost starts a new header unless the label
// begins with "Note". Two consecutive rows without cost and label also end
// the section; the first of them is kept.
func (l *Locator) Section(name string) []int {
	start, ok := l.Find(name, MatchExact)
	if !ok {
		return nil
	}
	rows := []int{start}
	for row := start + 1; row <= l.sheet.MaxRow; row++ {
		label := l.sheet.Cell(row, xlsx.ColLabel).Literal()
		cost := l.sheet.Cell(row, xlsx.ColCost).Literal()

		if !label.IsFalsy() && cost.IsFalsy() && !strings.HasPrefix(strings.TrimSpace(label.String()), "Note") {
			break
		}
		rows = append(rows, row)

		if label.IsFalsy() && cost.IsFalsy() && l.sheet.Cell(row+1, xlsx.ColLabel).Literal().IsFalsy() {
			break
		}
	}
	return rows
}
