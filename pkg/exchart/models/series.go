// Package models defines data structures shared by the chart renderer.
package models

// SeriesRenderData is one named series of values plotted against the shared categories.
type SeriesRenderData struct {
	// Name is the series display name, also used as its table column name.
	Name string `json:"name"`
	// Values holds one value per category.
	Values []float64 `json:"values"`
}

// ChartRenderData is a resolved dataset for one chart.
type ChartRenderData struct {
	// Title replaces the chart title when non-empty.
	Title string `json:"title,omitempty"`
	// Categories are the shared category labels.
	Categories []string `json:"categories"`
	// Series is the list of series to plot, in order.
	Series []SeriesRenderData `json:"series"`
}

// NumPoints returns the number of data points per series.
func (d ChartRenderData) NumPoints() int {
	return len(d.Categories)
}
