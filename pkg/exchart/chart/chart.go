package chart

// DefaultSheetName is the data sheet name used when a chart carries no references.
const DefaultSheetName = "Sheet1"

// NumericalDataSource is a value range of the data sheet bound to its values.
type NumericalDataSource struct {
	// Ref is the sheet-qualified absolute range (e.g., "Sheet1!$B$2:$B$4").
	Ref string
	// Col is the 0-based sheet column the range covers.
	Col        int
	Values     []float64
	FormatCode string
}

// PointCount returns the number of values.
func (d *NumericalDataSource) PointCount() int {
	return len(d.Values)
}

// CategoricalDataSource is a category range of the data sheet bound to its labels.
type CategoricalDataSource struct {
	Ref    string
	Col    int
	Labels []string
}

// PointCount returns the number of labels.
func (d *CategoricalDataSource) PointCount() int {
	return len(d.Labels)
}

// Series is a chart series bound to its category and value data sources.
type Series struct {
	Name     string
	NameRef  string
	Category *CategoricalDataSource
	Values   *NumericalDataSource

	entry *Entry
}

// Replace rebinds the series to new data sources.
func (s *Series) Replace(category *CategoricalDataSource, values *NumericalDataSource) {
	s.Category = category
	s.Values = values
}

// SetName sets the series title and the cell reference holding it.
func (s *Series) SetName(name, ref string) {
	s.Name = name
	s.NameRef = ref
}

// Chart is the in-memory model of a chart part.
type Chart struct {
	Title string
	// SheetName is the data sheet the series formulas point into.
	SheetName string
	// Series is the ordered list of bound series.
	Series []*Series
	// Plot is the series collection of the chart type.
	Plot Plot

	// src is the decoded chart part; nil for charts built in memory.
	src *chartSource
}

// New returns an empty chart drawing into plot.
func New(plot Plot) *Chart {
	return &Chart{SheetName: DefaultSheetName, Plot: plot}
}

// AddSeries appends a new series to the chart and a matching entry to its plot.
func (c *Chart) AddSeries(category *CategoricalDataSource, values *NumericalDataSource) *Series {
	n := len(c.Plot.Entries())
	e := &Entry{Idx: n, Order: n}
	c.Plot.AppendEntry(e)
	s := &Series{Category: category, Values: values, entry: e}
	c.Series = append(c.Series, s)
	return s
}

// RemoveSeries removes the i-th bound series. The plot collection is left as is.
func (c *Chart) RemoveSeries(i int) error {
	if i < 0 || i >= len(c.Series) {
		return ErrIndexOutOfRange
	}
	c.Series = append(c.Series[:i], c.Series[i+1:]...)
	return nil
}

// Apply writes the bound series' names and data sources into their plot entries.
func (c *Chart) Apply() {
	for _, s := range c.Series {
		e := s.entry
		if e == nil {
			continue
		}
		e.TxRef = s.NameRef
		e.TxValue = s.Name
		if s.Category != nil {
			e.CatRef = s.Category.Ref
			e.CatCache = append([]string(nil), s.Category.Labels...)
			e.CatNumeric = false
		}
		if s.Values != nil {
			e.ValRef = s.Values.Ref
			e.ValCache = append([]float64(nil), s.Values.Values...)
			e.FormatCode = s.Values.FormatCode
		}
	}
}
