package exchart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exchart-go/pkg/exchart"
	"github.com/ukaji3/exchart-go/pkg/exchart/chart"
	"github.com/ukaji3/exchart-go/pkg/exchart/models"
)

const twoSeriesBarChart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <c:chart>
    <c:title><c:tx><c:rich><a:bodyPr/><a:p><a:r><a:t>Template</a:t></a:r></a:p></c:rich></c:tx></c:title>
    <c:plotArea>
      <c:layout/>
      <c:barChart>
        <c:barDir val="col"/>
        <c:grouping val="clustered"/>
        <c:ser>
          <c:idx val="0"/><c:order val="0"/>
          <c:tx><c:strRef><c:f>Sheet1!$B$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>A</c:v></c:pt></c:strCache></c:strRef></c:tx>
          <c:cat><c:strRef><c:f>Sheet1!$A$2:$A$3</c:f><c:strCache><c:ptCount val="2"/><c:pt idx="0"><c:v>x</c:v></c:pt><c:pt idx="1"><c:v>y</c:v></c:pt></c:strCache></c:strRef></c:cat>
          <c:val><c:numRef><c:f>Sheet1!$B$2:$B$3</c:f><c:numCache><c:formatCode>General</c:formatCode><c:ptCount val="2"/><c:pt idx="0"><c:v>1</c:v></c:pt><c:pt idx="1"><c:v>2</c:v></c:pt></c:numCache></c:numRef></c:val>
        </c:ser>
        <c:ser>
          <c:idx val="1"/><c:order val="1"/>
          <c:tx><c:strRef><c:f>Sheet1!$C$1</c:f><c:strCache><c:ptCount val="1"/><c:pt idx="0"><c:v>B</c:v></c:pt></c:strCache></c:strRef></c:tx>
          <c:cat><c:strRef><c:f>Sheet1!$A$2:$A$3</c:f></c:strRef></c:cat>
          <c:val><c:numRef><c:f>Sheet1!$C$2:$C$3</c:f></c:numRef></c:val>
        </c:ser>
        <c:axId val="1"/><c:axId val="2"/>
      </c:barChart>
      <c:catAx><c:axId val="1"/></c:catAx>
      <c:valAx><c:axId val="2"/></c:valAx>
    </c:plotArea>
  </c:chart>
</c:chartSpace>`

func decodeFixture(t *testing.T) *chart.Chart {
	t.Helper()
	c, err := chart.Decode([]byte(twoSeriesBarChart))
	require.NoError(t, err)
	require.Len(t, c.Series, 2)
	return c
}

func TestRenderScenario(t *testing.T) {
	s := exchart.New(exchart.DefaultOptions(), nil)
	sheet := newSheet(t)
	c := decodeFixture(t)

	data := models.ChartRenderData{
		Title:      "Quarterly",
		Categories: []string{"Q1", "Q2", "Q3"},
		Series:     salesAndCost(),
	}
	require.NoError(t, s.Render(c, sheet, data))

	assert.Equal(t, "Quarterly", c.Title)
	require.Len(t, c.Series, 2)
	assert.Equal(t, "Sales", c.Series[0].Name)
	assert.Equal(t, "Sheet1!$B$1", c.Series[0].NameRef)
	assert.Equal(t, "Sheet1!$A$2:$A$4", c.Series[0].Category.Ref)
	assert.Equal(t, "Sheet1!$C$2:$C$4", c.Series[1].Values.Ref)

	table := sheet.Tables()[0]
	assert.Equal(t, "A1:C4", table.Ref)
	assert.Equal(t, []string{"", "Sales", "Cost"}, table.ColumnNames())

	entries := c.Plot.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []float64{5, 15, 25}, entries[1].ValCache)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, entries[0].CatCache)
	assert.Equal(t, "Cost", entries[1].TxValue)

	got, err := sheet.ReadSeries()
	require.NoError(t, err)
	assert.Equal(t, data.Categories, got.Categories)
	assert.Equal(t, data.Series, got.Series)
}

func TestRenderGrowsSeries(t *testing.T) {
	s := exchart.New(exchart.DefaultOptions(), nil)
	sheet := newSheet(t)
	c := decodeFixture(t)

	data := models.ChartRenderData{
		Categories: []string{"a", "b"},
		Series: []models.SeriesRenderData{
			{Name: "one", Values: []float64{1, 2}},
			{Name: "two", Values: []float64{3, 4}},
			{Name: "three", Values: []float64{5, 6}},
		},
	}
	require.NoError(t, s.Render(c, sheet, data))

	assert.Equal(t, "Template", c.Title)
	require.Len(t, c.Series, 3)
	entries := c.Plot.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[2].Idx)
	assert.Equal(t, "Sheet1!$D$2:$D$3", entries[2].ValRef)
	assert.Equal(t, "Sheet1!$D$1", entries[2].TxRef)
	assert.Equal(t, "A1:D3", sheet.Tables()[0].Ref)
	assert.True(t, sheet.CellExists(2, 3))
}

func TestRenderShrinksSeries(t *testing.T) {
	s := exchart.New(exchart.DefaultOptions(), nil)
	sheet := newSheet(t)
	c := decodeFixture(t)

	wide := models.ChartRenderData{
		Categories: []string{"a", "b"},
		Series: []models.SeriesRenderData{
			{Name: "one", Values: []float64{1, 2}},
			{Name: "two", Values: []float64{3, 4}},
			{Name: "three", Values: []float64{5, 6}},
		},
	}
	require.NoError(t, s.Render(c, sheet, wide))

	narrow := models.ChartRenderData{
		Categories: []string{"a", "b"},
		Series:     []models.SeriesRenderData{{Name: "only", Values: []float64{7, 8}}},
	}
	require.NoError(t, s.Render(c, sheet, narrow))

	require.Len(t, c.Series, 1)
	assert.Len(t, c.Plot.Entries(), 1)
	table := sheet.Tables()[0]
	assert.Equal(t, "A1:B3", table.Ref)
	assert.Equal(t, []string{"", "only"}, table.ColumnNames())
	for row := 0; row <= 2; row++ {
		assert.False(t, sheet.CellExists(row, 2))
		assert.False(t, sheet.CellExists(row, 3))
	}

	got, err := sheet.ReadSeries()
	require.NoError(t, err)
	assert.Equal(t, narrow.Series, got.Series)
}

func TestRenderCategoryHeader(t *testing.T) {
	header := "Quarter"
	opts := exchart.DefaultOptions()
	opts.CategoryHeader = &header
	s := exchart.New(opts, nil)
	sheet := newSheet(t)
	c := decodeFixture(t)

	data := models.ChartRenderData{Categories: []string{"Q1"}, Series: salesAndCost()[:1]}
	data.Series[0].Values = []float64{1}
	require.NoError(t, s.Render(c, sheet, data))

	v, err := sheet.File().GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Quarter", v)
}

func TestRenderInvalidData(t *testing.T) {
	s := exchart.New(exchart.DefaultOptions(), nil)
	sheet := newSheet(t)

	tests := []struct {
		name string
		data models.ChartRenderData
		want error
	}{
		{"no series", models.ChartRenderData{Categories: []string{"a"}}, exchart.ErrEmptySeries},
		{"no categories", models.ChartRenderData{Series: []models.SeriesRenderData{{Name: "s"}}}, exchart.ErrNoCategories},
		{"ragged", models.ChartRenderData{
			Categories: []string{"a", "b"},
			Series:     []models.SeriesRenderData{{Name: "s", Values: []float64{1}}},
		}, exchart.ErrSeriesLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := decodeFixture(t)
			err := s.Render(c, sheet, tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Len(t, c.Series, 2)
		})
	}
}
