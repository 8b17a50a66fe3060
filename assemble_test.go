package pricelist

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/schema/soo/sml"

	"github.com/aerissecure/pricelist/xlsx"
)

func scenarioManifest() *Manifest {
	return &Manifest{
		Title:         "Price List Reorganized",
		MinLabelWidth: 60,
		Regions: []Region{
			{
				Category:      "New Construction",
				PhaseColor:    "334155",
				PhaseFallback: []string{"Remodel"},
				Directives:    Directives{Phase{Name: "PHASE 1"}, Section{Name: "Pool Base Cost"}},
			},
			{
				Category:   "Remodel",
				PhaseColor: "475569",
				Directives: Directives{Phase{Name: "DEMO"}, Section{Name: "Strip Plaster"}},
			},
		},
	}
}

var thinBorder = &sml.CT_Border{Bottom: &sml.CT_BorderPr{StyleAttr: sml.ST_BorderStyleThin}}

func scenarioSheet() *xlsx.Sheet {
	category := func(label string) xlsx.Cell {
		return xlsx.Cell{Value: xlsx.StringValue(label), Style: xlsx.Style{Border: thinBorder}}
	}
	return sheetOf(
		row("Cost", "Factor", "Item"),
		row(nil, nil, "Last Updated: 2025-01-01"),
		row(nil, nil, category("New Construction")),
		row(nil, nil, "Pool Base Cost"),
		row(xlsx.Cell{Formula: "B5*100", Value: xlsx.NumberValue(100)}, 1.0, "Base"),
		row(nil, nil, category("Remodel")),
		row(nil, nil, "Strip Plaster"),
		row(50, 1.0, "Strip"),
	)
}

func TestAssembleScenario(t *testing.T) {
	res, err := NewAssembler(scenarioManifest()).Assemble(scenarioSheet())
	require.NoError(t, err)

	want := []string{
		"Item",
		"Last Updated: 2025-01-01",
		"NEW CONSTRUCTION",
		"PHASE 1",
		"Pool Base Cost",
		"Base",
		"REMODEL",
		"DEMO",
		"Strip Plaster",
		"Strip",
	}
	if diff := cmp.Diff(want, labels(res.Builder.Rows())); diff != "" {
		t.Fatalf("output labels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 10, res.Report.RowsWritten)
	assert.Equal(t, 1, res.Report.HeaderRow)
	assert.Equal(t, 2, res.Report.LastUpdatedRow)
	assert.Equal(t, []string{"New Construction", "Remodel"}, res.Report.CategoriesFound)
	assert.Empty(t, res.Report.SectionsMissing)
	assert.Equal(t, []SectionCopy{
		{Region: "New Construction", Name: "Pool Base Cost", Rows: 2},
		{Region: "Remodel", Name: "Strip Plaster", Rows: 2},
	}, res.Report.Sections)
}

func TestAssembleCopiesComputedValues(t *testing.T) {
	res, err := NewAssembler(scenarioManifest()).Assemble(scenarioSheet())
	require.NoError(t, err)

	base := res.Builder.Rows()[5]
	assert.Equal(t, xlsx.NumberValue(100), base.Cells[xlsx.ColCost-1].Value)
	assert.Empty(t, base.Cells[xlsx.ColCost-1].Formula)
	assert.Equal(t, xlsx.NumberValue(1), base.Cells[xlsx.ColFactor-1].Value)

	strip := res.Builder.Rows()[9]
	assert.Equal(t, xlsx.NumberValue(50), strip.Cells[xlsx.ColCost-1].Value)
}

func TestAssemblePhaseRows(t *testing.T) {
	res, err := NewAssembler(scenarioManifest()).Assemble(scenarioSheet())
	require.NoError(t, err)

	for _, tt := range []struct {
		idx   int
		name  string
		color string
	}{
		{3, "PHASE 1", "FF334155"},
		{7, "DEMO", "FF475569"},
	} {
		r := res.Builder.Rows()[tt.idx]
		assert.Equal(t, xlsx.Value{}, r.Cells[0].Value)
		assert.Equal(t, xlsx.Value{}, r.Cells[1].Value)
		assert.Equal(t, xlsx.StringValue(tt.name), r.Cells[2].Value)

		st := r.Cells[2].Style
		assert.Same(t, thinBorder, st.Border, "template border is kept")
		require.NotNil(t, st.Fill)
		assert.Equal(t, tt.color, *st.Fill.PatternFill.FgColor.RgbAttr)
		flat := st.Flatten()
		assert.Equal(t, "Arial", flat.FontFamily)
		assert.Equal(t, 14.0, flat.FontSizePt)
		assert.True(t, flat.Bold)
		assert.Equal(t, "FFFFFF", flat.FontColor)
		assert.Equal(t, "center", flat.HorizontalAlign)
		assert.Equal(t, "middle", flat.VerticalAlign)
	}
}

func TestAssembleMissingPieces(t *testing.T) {
	s := sheetOf(
		row("Cost", "Factor", "Item"),
		row(nil, nil, "Remodel"),
		row(nil, nil, "Strip Plaster"),
		row(50, 1, "Strip"),
		row(10, 1, "Haul"),
	)
	m := scenarioManifest()
	m.Regions[0].Directives = append(m.Regions[0].Directives, Section{Name: "Spa Only"})

	res, err := NewAssembler(m).Assemble(s)
	require.NoError(t, err)

	want := []string{
		"Item",
		"PHASE 1", // styled after the Remodel row
		"REMODEL",
		"DEMO",
		"Strip Plaster",
		"Strip",
		"Haul",
	}
	if diff := cmp.Diff(want, labels(res.Builder.Rows())); diff != "" {
		t.Fatalf("output labels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, res.Report.LastUpdatedRow)
	assert.Equal(t, []string{"New Construction"}, res.Report.CategoriesMissing)
	assert.Equal(t, []string{"Pool Base Cost", "Spa Only"}, res.Report.SectionsMissing)
	assert.Empty(t, res.Report.PhasesSkipped)
}

func TestAssembleSkipsPhasesWithoutTemplate(t *testing.T) {
	tests := []struct {
		name    string
		sheet   [][3]interface{}
		want    []string
		skipped []string
	}{
		{
			name: "remodel row missing",
			sheet: [][3]interface{}{
				row("Cost", "Factor", "Item"),
				row(nil, nil, "New Construction"),
				row(nil, nil, "Pool Base Cost"),
				row(100, 1, "Base"),
				row(nil, nil, "Strip Plaster"),
				row(50, 1, "Strip"),
			},
			want:    []string{"Item", "NEW CONSTRUCTION", "PHASE 1", "Pool Base Cost", "Base", "Strip Plaster", "Strip"},
			skipped: []string{"DEMO"},
		},
		{
			name: "no category rows",
			sheet: [][3]interface{}{
				row("Cost", "Factor", "Item"),
				row(nil, nil, "Pool Base Cost"),
				row(100, 1, "Base"),
			},
			want:    []string{"Item", "Pool Base Cost", "Base"},
			skipped: []string{"PHASE 1", "DEMO"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewAssembler(scenarioManifest()).Assemble(sheetOf(tt.sheet...))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, labels(res.Builder.Rows())); diff != "" {
				t.Fatalf("output labels mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.skipped, res.Report.PhasesSkipped)
			assert.Equal(t, len(tt.want), res.Report.RowsWritten)
		})
	}
}

func TestAssembleRowCount(t *testing.T) {
	s := scenarioSheet()
	m := scenarioManifest()
	res, err := NewAssembler(m).Assemble(s)
	require.NoError(t, err)

	loc := NewLocator(s)
	want := 1
	if _, ok := loc.Find("Last Updated", MatchContains); ok {
		want++
	}
	for _, r := range m.Regions {
		if _, ok := loc.Find(r.Category, MatchExact); ok {
			want++
		}
		for _, d := range r.Directives {
			switch d := d.(type) {
			case Phase:
				want++
			case Section:
				want += len(loc.Section(d.Name))
			}
		}
	}
	assert.Equal(t, want, res.Builder.Len())
}

func TestAssembleColumnWidths(t *testing.T) {
	s := scenarioSheet()
	s.ColWidths[xlsx.ColCost] = 11
	s.ColWidths[xlsx.ColLabel] = 42

	res, err := NewAssembler(scenarioManifest()).Assemble(s)
	require.NoError(t, err)

	w, ok := res.Builder.ColWidth(xlsx.ColCost)
	assert.True(t, ok)
	assert.Equal(t, 11.0, w)
	_, ok = res.Builder.ColWidth(xlsx.ColFactor)
	assert.False(t, ok)
	w, _ = res.Builder.ColWidth(xlsx.ColLabel)
	assert.Equal(t, 60.0, w)

	s.ColWidths[xlsx.ColLabel] = 75
	res, err = NewAssembler(scenarioManifest()).Assemble(s)
	require.NoError(t, err)
	w, _ = res.Builder.ColWidth(xlsx.ColLabel)
	assert.Equal(t, 75.0, w)
}

func TestReorganize(t *testing.T) {
	dir := t.TempDir()
	src := xlsx.NewBuilder("Price List Working Copy", nil)
	for r := 1; r <= scenarioSheet().MaxRow; r++ {
		src.Append(scenarioSheet().Row(r))
	}
	src.SetColWidth(xlsx.ColLabel, 30)

	m := scenarioManifest()
	m.Source = filepath.Join(dir, "source.xlsx")
	m.Output = filepath.Join(dir, "reorganized.xlsx")
	require.NoError(t, src.Save(m.Source))

	rep, err := Reorganize(m)
	require.NoError(t, err)
	assert.Equal(t, 10, rep.RowsWritten)

	out, err := xlsx.Open(m.Output, "")
	require.NoError(t, err)
	assert.Equal(t, "Price List Reorganized", out.Name)
	assert.Equal(t, 10, out.MaxRow)
	assert.Equal(t, "NEW CONSTRUCTION", out.Row(3).Label())
	assert.Equal(t, "PHASE 1", out.Row(4).Label())
	assert.True(t, out.Cell(4, xlsx.ColCost).Effective().IsEmpty())
	assert.Equal(t, xlsx.NumberValue(100), out.Cell(6, xlsx.ColCost).Value)
	assert.Equal(t, "DEMO", out.Row(8).Label())
	assert.Equal(t, "475569", out.Cell(8, xlsx.ColLabel).Style.Flatten().BackgroundColor)

	w, ok := out.ColWidth(xlsx.ColLabel)
	assert.True(t, ok)
	assert.Equal(t, 60.0, w)
}

func TestReorganizeMissingSource(t *testing.T) {
	m := scenarioManifest()
	m.Source = filepath.Join(t.TempDir(), "missing.xlsx")
	m.Output = filepath.Join(t.TempDir(), "out.xlsx")

	_, err := Reorganize(m)
	assert.Error(t, err)
	assert.NoFileExists(t, m.Output)
}
