package xlsx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML(t *testing.T) {
	phase := Style{Font: boldFont("Arial", 14), Fill: solidFill("FF475569")}

	s := NewSheet("Price List Reorganized")
	s.Set(1, ColCost, Cell{Ref: "A1", Value: StringValue("Cost")})
	s.Set(1, ColLabel, Cell{Ref: "C1", Value: StringValue("Item")})
	s.Set(2, ColLabel, Cell{Ref: "C2", Value: StringValue("REMODEL PHASE 1: DEMOLITION & PREPARATION"), Style: phase})
	s.Set(3, ColCost, Cell{Ref: "A3", Value: NumberValue(50)})
	s.Set(3, ColLabel, Cell{Ref: "C3", Value: StringValue("Strip\nper sq ft")})
	s.ColWidths[ColLabel] = 60

	page := RenderHTML(s)

	assert.Contains(t, page, `data-name="Price List Reorganized"`)
	assert.Contains(t, page, "REMODEL PHASE 1: DEMOLITION &amp; PREPARATION")
	assert.Contains(t, page, "Strip<br>per sq ft")
	assert.Contains(t, page, ">50</td>")
	assert.Contains(t, page, "background-color:#475569;")
	assert.Contains(t, page, "font-weight:bold;")
	assert.Contains(t, page, `<col style="width:498px;">`)
	assert.Equal(t, 3, strings.Count(page, "<tr>"))
}

func TestTallyMajority(t *testing.T) {
	tl := tally[string]{"Calibri": 3, "Arial": 1}
	assert.Equal(t, "Calibri", tl.majority(4))
	assert.Equal(t, "", tl.majority(6), "no majority")
}
