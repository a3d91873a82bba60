package models

// SeriesSummary describes one chart series as bound in the chart part.
type SeriesSummary struct {
	Name      string `json:"name"`
	NameRange string `json:"name_range,omitempty"`
	XRange    string `json:"x_range,omitempty"`
	YRange    string `json:"y_range,omitempty"`
	NumPoints int    `json:"num_points"`
}

// ChartSummary is the inspection view of a chart part and its backing sheet.
type ChartSummary struct {
	// ChartType is the chart type (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// SheetName is the sheet the series formulas point into.
	SheetName string `json:"sheet_name"`
	// Series is the list of series bound to the chart.
	Series []SeriesSummary `json:"series"`
	// Tables lists the table parts on the backing sheet (nil without a workbook).
	Tables []TableDefinition `json:"tables,omitempty"`
	// Data is the dataset currently stored in the backing table.
	Data *ChartRenderData `json:"data,omitempty"`
}
