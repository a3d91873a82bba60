// Package chart holds the in-memory model of an OOXML chart part.
package chart

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a series index does not exist in a plot.
var ErrIndexOutOfRange = errors.New("series index out of range")

// Kind is a chart type name.
type Kind string

const (
	KindBar       Kind = "Bar"
	KindBar3D     Kind = "3DBar"
	KindLine      Kind = "Line"
	KindLine3D    Kind = "3DLine"
	KindArea      Kind = "Area"
	KindArea3D    Kind = "3DArea"
	KindPie       Kind = "Pie"
	KindPie3D     Kind = "3DPie"
	KindDoughnut  Kind = "Doughnut"
	KindScatter   Kind = "XYScatter"
	KindBubble    Kind = "Bubble"
	KindRadar     Kind = "Radar"
	KindSurface   Kind = "Surface"
	KindSurface3D Kind = "3DSurface"
	KindStock     Kind = "Stock"
	KindPieOfPie  Kind = "PieOfPie"
)

// TypeMap maps OOXML chart element tags to chart type names.
var TypeMap = map[string]Kind{
	"lineChart":      KindLine,
	"line3DChart":    KindLine3D,
	"barChart":       KindBar,
	"bar3DChart":     KindBar3D,
	"areaChart":      KindArea,
	"area3DChart":    KindArea3D,
	"pieChart":       KindPie,
	"pie3DChart":     KindPie3D,
	"doughnutChart":  KindDoughnut,
	"scatterChart":   KindScatter,
	"bubbleChart":    KindBubble,
	"radarChart":     KindRadar,
	"surfaceChart":   KindSurface,
	"surface3DChart": KindSurface3D,
	"stockChart":     KindStock,
	"ofPieChart":     KindPieOfPie,
}

// Entry is the serialized state of a single c:ser element.
type Entry struct {
	Idx   int
	Order int
	// TxRef and TxValue hold the series name formula and its cached value.
	TxRef   string
	TxValue string
	// CatRef and CatCache hold the category formula and its cached labels.
	CatRef   string
	CatCache []string
	// CatNumeric is set when the category reference was a c:numRef.
	CatNumeric bool
	// ValRef and ValCache hold the value formula and its cached values.
	ValRef     string
	ValCache   []float64
	FormatCode string

	// src is the decoded c:ser element; nil for entries added in memory.
	src *serSource
}

// Plot is the series collection of a concrete chart type.
// The set of implementations is closed: *BarPlot, *LinePlot and *OtherPlot.
type Plot interface {
	Kind() Kind
	// Tag is the OOXML element name of the plot (e.g., "barChart").
	Tag() string
	Entries() []*Entry
	AppendEntry(e *Entry)
	isPlot()
}

// SeriesRemover is implemented by plots whose series collection can be trimmed by index.
type SeriesRemover interface {
	RemoveSeriesAt(i int) error
}

type collection struct {
	entries []*Entry
}

func (c *collection) Entries() []*Entry {
	return c.entries
}

func (c *collection) AppendEntry(e *Entry) {
	c.entries = append(c.entries, e)
}

func (c *collection) removeAt(i int) error {
	if i < 0 || i >= len(c.entries) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(c.entries))
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

func (*collection) isPlot() {}

// BarPlot is a c:barChart plot.
type BarPlot struct {
	collection
	// Direction is "col" or "bar".
	Direction string
	// Grouping is "clustered", "stacked", "percentStacked" or "standard".
	Grouping string
}

// NewBarPlot returns an empty clustered column plot.
func NewBarPlot() *BarPlot {
	return &BarPlot{Direction: "col", Grouping: "clustered"}
}

func (*BarPlot) Kind() Kind  { return KindBar }
func (*BarPlot) Tag() string { return "barChart" }

// RemoveSeriesAt removes the i-th c:ser element.
func (p *BarPlot) RemoveSeriesAt(i int) error {
	return p.removeAt(i)
}

// LinePlot is a c:lineChart plot.
type LinePlot struct {
	collection
	Grouping string
	// Marker reports whether line markers are shown.
	Marker bool
}

// NewLinePlot returns an empty standard line plot.
func NewLinePlot() *LinePlot {
	return &LinePlot{Grouping: "standard", Marker: true}
}

func (*LinePlot) Kind() Kind  { return KindLine }
func (*LinePlot) Tag() string { return "lineChart" }

// RemoveSeriesAt removes the i-th c:ser element.
func (p *LinePlot) RemoveSeriesAt(i int) error {
	return p.removeAt(i)
}

// OtherPlot is any chart type without series trimming support.
// Its entries are kept and serialized, but never removed.
type OtherPlot struct {
	collection
	tag string
}

// NewOtherPlot returns a plot for the given OOXML element tag.
func NewOtherPlot(tag string) *OtherPlot {
	return &OtherPlot{tag: tag}
}

func (p *OtherPlot) Kind() Kind {
	if k, ok := TypeMap[p.tag]; ok {
		return k
	}
	return Kind(p.tag)
}

func (p *OtherPlot) Tag() string { return p.tag }

// newPlot builds the plot variant for an OOXML element tag.
func newPlot(tag string) Plot {
	switch tag {
	case "barChart":
		return NewBarPlot()
	case "lineChart":
		return NewLinePlot()
	default:
		return NewOtherPlot(tag)
	}
}
