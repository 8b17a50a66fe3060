package pricelist

import (
	"fmt"

	"github.com/aerissecure/pricelist/xlsx"
)

// sheetOf builds a sheet from rows of cost, factor and label. Strings become
// text cells, numbers become numeric cells and nil leaves the cell empty.
func sheetOf(rows ...[3]interface{}) *xlsx.Sheet {
	s := xlsx.NewSheet("Price List Working Copy")
	for i, r := range rows {
		for j, v := range r {
			col := j + 1
			ref := fmt.Sprintf("%c%d", 'A'+j, i+1)
			switch v := v.(type) {
			case nil:
			case string:
				s.Set(i+1, col, xlsx.Cell{Ref: ref, Value: xlsx.StringValue(v)})
			case int:
				s.Set(i+1, col, xlsx.Cell{Ref: ref, Value: xlsx.NumberValue(float64(v))})
			case float64:
				s.Set(i+1, col, xlsx.Cell{Ref: ref, Value: xlsx.NumberValue(v)})
			case xlsx.Cell:
				v.Ref = ref
				s.Set(i+1, col, v)
			}
		}
		if i+1 > s.MaxRow {
			s.MaxRow = i + 1
		}
	}
	return s
}

func row(a, b, c interface{}) [3]interface{} { return [3]interface{}{a, b, c} }

func labels(rows []xlsx.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label()
	}
	return out
}
