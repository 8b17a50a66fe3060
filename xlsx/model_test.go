package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellEffective(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want Value
	}{
		{
			name: "formula keeps cached number",
			cell: Cell{Formula: "A4*B4", Value: NumberValue(150)},
			want: NumberValue(150),
		},
		{
			name: "formula without cached result is dropped",
			cell: Cell{Formula: "SUM(A1:A3)"},
			want: Value{},
		},
		{
			name: "plain text",
			cell: Cell{Value: StringValue("Pool Base Cost")},
			want: StringValue("Pool Base Cost"),
		},
		{
			name: "plain number",
			cell: Cell{Value: NumberValue(1.25)},
			want: NumberValue(1.25),
		},
		{
			name: "empty",
			cell: Cell{},
			want: Value{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Effective())
		})
	}
}

func TestCellLiteral(t *testing.T) {
	c := Cell{Formula: "A4*B4", Value: NumberValue(150)}
	assert.Equal(t, "=A4*B4", c.Literal().Text)
	assert.True(t, c.Literal().IsFormula())
	assert.Equal(t, NumberValue(150), c.Computed())
	assert.Equal(t, "=A4*B4", c.Text())
}

func TestValueIsEmpty(t *testing.T) {
	assert.True(t, Value{}.IsEmpty())
	assert.True(t, StringValue("   ").IsEmpty())
	assert.False(t, NumberValue(0).IsEmpty(), "zero cost is a value")
	assert.False(t, BoolValue(false).IsEmpty())
	assert.False(t, StringValue("Note - per foot").IsEmpty())
}

func TestValueIsFalsy(t *testing.T) {
	assert.True(t, Value{}.IsFalsy())
	assert.True(t, StringValue("").IsFalsy())
	assert.True(t, NumberValue(0).IsFalsy())
	assert.True(t, BoolValue(false).IsFalsy())
	assert.False(t, StringValue("  ").IsFalsy())
	assert.False(t, NumberValue(0.01).IsFalsy())
	assert.False(t, Value{Kind: Error, Text: "#N/A"}.IsFalsy())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "100", NumberValue(100).String())
	assert.Equal(t, "1.5", NumberValue(1.5).String())
	assert.Equal(t, "TRUE", BoolValue(true).String())
	assert.Equal(t, "", Value{}.String())
}

func TestSheetBounds(t *testing.T) {
	s := NewSheet("Sheet1")
	s.Set(4, ColLabel, Cell{Value: StringValue("Tile")})
	s.Set(9, 5, Cell{Value: StringValue("ignored")})

	assert.Equal(t, 4, s.MaxRow)
	assert.Equal(t, "Tile", s.Row(4).Label())
	assert.True(t, s.Cell(4, 5).IsEmpty())
	assert.True(t, s.Cell(100, ColCost).IsEmpty())

	w, ok := s.ColWidth(ColLabel)
	assert.False(t, ok)
	assert.Equal(t, DefaultColWidth, w)
}
