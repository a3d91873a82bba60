package chart

import (
	"encoding/xml"
	"strconv"
)

// XML namespaces used in chart parts
const (
	nsC = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const (
	catAxisID = "500000001"
	valAxisID = "500000002"
)

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlChartSpace struct {
	XMLName xml.Name `xml:"c:chartSpace"`
	XMLNSc  string   `xml:"xmlns:c,attr"`
	XMLNSa  string   `xml:"xmlns:a,attr"`
	XMLNSr  string   `xml:"xmlns:r,attr"`
	Chart   xmlChart `xml:"c:chart"`
}

type xmlChart struct {
	Title            *xmlTitle   `xml:"c:title"`
	AutoTitleDeleted xmlVal      `xml:"c:autoTitleDeleted"`
	PlotArea         xmlPlotArea `xml:"c:plotArea"`
	Legend           xmlLegend   `xml:"c:legend"`
	PlotVisOnly      xmlVal      `xml:"c:plotVisOnly"`
}

type xmlTitle struct {
	Rich    xmlTitleTx `xml:"c:tx"`
	Overlay xmlVal     `xml:"c:overlay"`
}

type xmlTitleTx struct {
	Rich xmlRich `xml:"c:rich"`
}

type xmlRich struct {
	XMLNSa string   `xml:"xmlns:a,attr,omitempty"`
	BodyPr struct{} `xml:"a:bodyPr"`
	P      xmlPara  `xml:"a:p"`
}

type xmlPara struct {
	R xmlRun `xml:"a:r"`
}

type xmlRun struct {
	T string `xml:"a:t"`
}

type xmlPlotArea struct {
	Layout struct{} `xml:"c:layout"`
	Plot   xmlPlot
	CatAx  *xmlAxis  `xml:"c:catAx"`
	ValAx  []xmlAxis `xml:"c:valAx"`
}

type xmlPlot struct {
	XMLName    xml.Name
	BarDir     *xmlVal  `xml:"c:barDir"`
	Grouping   *xmlVal  `xml:"c:grouping"`
	VaryColors xmlVal   `xml:"c:varyColors"`
	Ser        []xmlSer `xml:"c:ser"`
	Marker     *xmlVal  `xml:"c:marker"`
	AxID       []xmlVal `xml:"c:axId"`
}

type xmlSer struct {
	Idx   xmlVal      `xml:"c:idx"`
	Order xmlVal      `xml:"c:order"`
	Tx    *xmlTx      `xml:"c:tx"`
	Cat   *xmlAxData  `xml:"c:cat"`
	Val   *xmlNumData `xml:"c:val"`
	XVal  *xmlAxData  `xml:"c:xVal"`
	YVal  *xmlNumData `xml:"c:yVal"`
}

type xmlTx struct {
	StrRef *xmlStrRef `xml:"c:strRef"`
	V      string     `xml:"c:v,omitempty"`
}

type xmlAxData struct {
	StrRef *xmlStrRef `xml:"c:strRef"`
	NumRef *xmlNumRef `xml:"c:numRef"`
}

type xmlNumData struct {
	NumRef *xmlNumRef `xml:"c:numRef"`
}

type xmlStrRef struct {
	F        string    `xml:"c:f"`
	StrCache *xmlCache `xml:"c:strCache"`
}

type xmlNumRef struct {
	F        string    `xml:"c:f"`
	NumCache *xmlCache `xml:"c:numCache"`
}

type xmlCache struct {
	FormatCode string  `xml:"c:formatCode,omitempty"`
	PtCount    xmlVal  `xml:"c:ptCount"`
	Pt         []xmlPt `xml:"c:pt"`
}

type xmlPt struct {
	Idx int    `xml:"idx,attr"`
	V   string `xml:"c:v"`
}

type xmlAxis struct {
	AxID    xmlVal     `xml:"c:axId"`
	Scaling xmlScaling `xml:"c:scaling"`
	Delete  xmlVal     `xml:"c:delete"`
	AxPos   xmlVal     `xml:"c:axPos"`
	CrossAx xmlVal     `xml:"c:crossAx"`
}

type xmlScaling struct {
	Orientation xmlVal `xml:"c:orientation"`
}

type xmlLegend struct {
	LegendPos xmlVal `xml:"c:legendPos"`
}

// Encode serializes a chart as chart part XML.
// Bound series should be applied with Chart.Apply before encoding.
// A decoded chart is written by editing its source in place, so elements the
// model does not hold (styling, data labels, other plots, external data) are
// kept as they were.
func Encode(c *Chart) ([]byte, error) {
	if c == nil || c.Plot == nil {
		return nil, ErrNotChart
	}
	if c.src != nil {
		return c.patch()
	}

	space := xmlChartSpace{
		XMLNSc: nsC,
		XMLNSa: nsA,
		XMLNSr: nsR,
		Chart: xmlChart{
			AutoTitleDeleted: xmlVal{Val: "0"},
			PlotArea:         encodePlotArea(c.Plot),
			Legend:           xmlLegend{LegendPos: xmlVal{Val: "r"}},
			PlotVisOnly:      xmlVal{Val: "1"},
		},
	}
	if c.Title != "" {
		space.Chart.Title = &xmlTitle{
			Rich:    titleTx(c.Title),
			Overlay: xmlVal{Val: "0"},
		}
	} else {
		space.Chart.AutoTitleDeleted = xmlVal{Val: "1"}
	}

	out, err := xml.Marshal(space)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func encodePlotArea(p Plot) xmlPlotArea {
	xyPlot := p.Kind() == KindScatter || p.Kind() == KindBubble

	plot := xmlPlot{
		XMLName:    xml.Name{Local: "c:" + p.Tag()},
		VaryColors: xmlVal{Val: "0"},
	}
	switch v := p.(type) {
	case *BarPlot:
		plot.BarDir = &xmlVal{Val: v.Direction}
		plot.Grouping = &xmlVal{Val: v.Grouping}
	case *LinePlot:
		plot.Grouping = &xmlVal{Val: v.Grouping}
		plot.Marker = &xmlVal{Val: boolVal(v.Marker)}
	}
	for _, e := range p.Entries() {
		plot.Ser = append(plot.Ser, encodeSeries(e, xyPlot))
	}

	area := xmlPlotArea{Plot: plot}
	if !hasAxes(p.Kind()) {
		plot.VaryColors = xmlVal{Val: "1"}
		area.Plot = plot
		return area
	}

	area.Plot.AxID = []xmlVal{{Val: catAxisID}, {Val: valAxisID}}
	first := xmlAxis{
		AxID:    xmlVal{Val: catAxisID},
		Scaling: xmlScaling{Orientation: xmlVal{Val: "minMax"}},
		Delete:  xmlVal{Val: "0"},
		AxPos:   xmlVal{Val: "b"},
		CrossAx: xmlVal{Val: valAxisID},
	}
	second := xmlAxis{
		AxID:    xmlVal{Val: valAxisID},
		Scaling: xmlScaling{Orientation: xmlVal{Val: "minMax"}},
		Delete:  xmlVal{Val: "0"},
		AxPos:   xmlVal{Val: "l"},
		CrossAx: xmlVal{Val: catAxisID},
	}
	if bar, ok := p.(*BarPlot); ok && bar.Direction == "bar" {
		first.AxPos = xmlVal{Val: "l"}
		second.AxPos = xmlVal{Val: "b"}
	}
	if xyPlot {
		area.ValAx = []xmlAxis{first, second}
	} else {
		area.CatAx = &first
		area.ValAx = []xmlAxis{second}
	}
	return area
}

func encodeSeries(e *Entry, xyPlot bool) xmlSer {
	ser := xmlSer{
		Idx:   xmlVal{Val: strconv.Itoa(e.Idx)},
		Order: xmlVal{Val: strconv.Itoa(e.Order)},
		Tx:    seriesTx(e),
	}
	if xyPlot {
		ser.XVal, ser.YVal = seriesCat(e), seriesVal(e)
	} else {
		ser.Cat, ser.Val = seriesCat(e), seriesVal(e)
	}
	return ser
}

func seriesTx(e *Entry) *xmlTx {
	switch {
	case e.TxRef != "":
		return &xmlTx{StrRef: &xmlStrRef{F: e.TxRef, StrCache: stringCache([]string{e.TxValue})}}
	case e.TxValue != "":
		return &xmlTx{V: e.TxValue}
	}
	return nil
}

func seriesCat(e *Entry) *xmlAxData {
	if e.CatRef == "" && len(e.CatCache) == 0 {
		return nil
	}
	if e.CatNumeric {
		return &xmlAxData{NumRef: &xmlNumRef{F: e.CatRef, NumCache: stringCache(e.CatCache)}}
	}
	return &xmlAxData{StrRef: &xmlStrRef{F: e.CatRef, StrCache: stringCache(e.CatCache)}}
}

func seriesVal(e *Entry) *xmlNumData {
	if e.ValRef == "" && len(e.ValCache) == 0 {
		return nil
	}
	cache := numberCache(e.ValCache)
	cache.FormatCode = e.FormatCode
	if cache.FormatCode == "" {
		cache.FormatCode = "General"
	}
	return &xmlNumData{NumRef: &xmlNumRef{F: e.ValRef, NumCache: cache}}
}

func titleTx(title string) xmlTitleTx {
	return xmlTitleTx{Rich: xmlRich{P: xmlPara{R: xmlRun{T: title}}}}
}

func stringCache(points []string) *xmlCache {
	cache := &xmlCache{PtCount: xmlVal{Val: strconv.Itoa(len(points))}}
	for i, p := range points {
		cache.Pt = append(cache.Pt, xmlPt{Idx: i, V: p})
	}
	return cache
}

func numberCache(values []float64) *xmlCache {
	cache := &xmlCache{PtCount: xmlVal{Val: strconv.Itoa(len(values))}}
	for i, v := range values {
		cache.Pt = append(cache.Pt, xmlPt{Idx: i, V: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return cache
}

func hasAxes(k Kind) bool {
	switch k {
	case KindPie, KindPie3D, KindDoughnut, KindPieOfPie:
		return false
	}
	return true
}

func boolVal(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
