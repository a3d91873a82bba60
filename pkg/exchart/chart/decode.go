package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNotChart indicates the XML holds no c:chartSpace with a supported plot.
var ErrNotChart = errors.New("not a chart part")

// maxPoints bounds the cached point count of a data reference.
const maxPoints = excelize.TotalRows

// Decode parses chart part XML (xl/charts/chartN.xml or word/charts/chartN.xml).
// The source bytes are kept so Encode can write back everything the model
// does not hold.
func Decode(data []byte) (*Chart, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	src := &chartSource{raw: data}

	var c *Chart
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" && c == nil {
			src.chartOpen = offset(decoder)
			c = parseChartElement(decoder, src)
		}
	}

	if c == nil || c.Plot == nil {
		return nil, ErrNotChart
	}
	src.title = c.Title
	c.src = src
	c.SheetName = sheetNameOf(c)
	return c, nil
}

func offset(decoder *xml.Decoder) int {
	return int(decoder.InputOffset())
}

// parseChartElement parses c:chart element.
func parseChartElement(decoder *xml.Decoder, src *chartSource) *Chart {
	c := &Chart{}
	depth := 1

	for depth > 0 {
		start := offset(decoder)
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				break
			}
			switch t.Name.Local {
			case "title":
				c.Title = parseChartTitle(decoder, src)
				src.titleSpan = &span{start, offset(decoder)}
				depth--
			case "autoTitleDeleted":
				decoder.Skip()
				src.autoDeleted = &span{start, offset(decoder)}
				depth--
			case "plotArea":
				c.Plot = parsePlotArea(decoder, src)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if c.Plot != nil {
		for _, e := range c.Plot.Entries() {
			c.Series = append(c.Series, bindEntry(e))
		}
	}
	return c
}

// parseChartTitle parses chart title element.
func parseChartTitle(decoder *xml.Decoder, src *chartSource) string {
	src.titleOpen = offset(decoder)
	var title string
	depth := 1

	for depth > 0 {
		start := offset(decoder)
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && t.Name.Local == "tx" {
				title = readRichText(decoder)
				src.titleTx = &span{start, offset(decoder)}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return title
}

// readRichText joins the a:t runs below the current element.
func readRichText(decoder *xml.Decoder) string {
	var parts []string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					parts = append(parts, txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(strings.Join(parts, ""))
}

// parsePlotArea parses plot area element, keeping the first chart type found.
func parsePlotArea(decoder *xml.Decoder, src *chartSource) Plot {
	var plot Plot
	depth := 1

	for depth > 0 {
		start := offset(decoder)
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if _, ok := TypeMap[t.Name.Local]; ok && depth == 2 && plot == nil {
				src.prefix = prefixAt(src.raw, start)
				plot = parsePlot(decoder, t.Name.Local, src)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return plot
}

// parsePlot parses a chart type element and its series.
func parsePlot(decoder *xml.Decoder, tag string, src *chartSource) Plot {
	plot := newPlot(tag)
	src.serInsert = offset(decoder)
	depth := 1

	for depth > 0 {
		start := offset(decoder)
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				break
			}
			name := t.Name.Local
			switch name {
			case "ser":
				plot.AppendEntry(parseSingleSeries(decoder, src.raw, start))
				if src.series == nil {
					src.series = &span{start, 0}
				}
				src.series.end = offset(decoder)
				depth--
			case "barDir", "grouping", "varyColors", "marker", "scatterStyle", "radarStyle", "wireframe", "ofPieType":
				val, found := attr(t, "val")
				decoder.Skip()
				sp := &span{start, offset(decoder)}
				depth--

				switch p := plot.(type) {
				case *BarPlot:
					if name == "barDir" && found {
						p.Direction = val
						src.barDir = sp
					}
					if name == "grouping" && found {
						p.Grouping = val
						src.grouping = sp
					}
				case *LinePlot:
					if name == "grouping" && found {
						p.Grouping = val
						src.grouping = sp
					}
					if name == "marker" {
						p.Marker = !found || val != "0"
						src.marker = sp
					}
				}
				// series follow the plot settings and precede everything else
				if name != "marker" && src.series == nil {
					src.serInsert = sp.end
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return plot
}

// parseSingleSeries parses a single series element starting at serStart.
func parseSingleSeries(decoder *xml.Decoder, raw []byte, serStart int) *Entry {
	e := &Entry{}
	src := &serSource{
		open:     offset(decoder) - serStart,
		children: map[string]span{},
		trailing: -1,
	}
	depth := 1

	for depth > 0 {
		start := offset(decoder)
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth != 2 {
				break
			}
			rel := start - serStart
			switch t.Name.Local {
			case "idx":
				e.Idx = attrInt(t, "val", e.Idx)
				decoder.Skip()
			case "order":
				e.Order = attrInt(t, "val", e.Order)
				decoder.Skip()
			case "tx":
				r := parseDataRef(decoder)
				e.TxRef = r.formula
				if len(r.points) > 0 {
					e.TxValue = r.points[0]
				} else {
					e.TxValue = r.literal
				}
			case "cat", "xVal":
				r := parseDataRef(decoder)
				e.CatRef = r.formula
				e.CatCache = r.points
				e.CatNumeric = r.numeric
				src.catTag = t.Name.Local
			case "val", "yVal":
				r := parseDataRef(decoder)
				e.ValRef = r.formula
				e.ValCache = parseFloats(r.points)
				e.FormatCode = r.formatCode
				src.valTag = t.Name.Local
			case "smooth", "shape", "bubbleSize", "bubble3D", "extLst":
				if src.trailing < 0 {
					src.trailing = rel
				}
				decoder.Skip()
			default:
				decoder.Skip()
			}
			depth--

			key := t.Name.Local
			switch key {
			case "xVal":
				key = "cat"
			case "yVal":
				key = "val"
			}
			switch key {
			case "idx", "order", "tx", "cat", "val":
				src.children[key] = span{rel, offset(decoder) - serStart}
			}
		case xml.EndElement:
			if depth == 1 {
				src.closing = start - serStart
			}
			depth--
		}
	}

	src.raw = raw[serStart:offset(decoder)]
	// a self-closing c:ser has no end tag to insert before
	if src.closing < src.open || src.closing >= len(src.raw) {
		return e
	}
	e.src = src
	return e
}

// dataRef is the content of a tx, cat or val element.
type dataRef struct {
	formula    string
	points     []string
	literal    string
	formatCode string
	numeric    bool
}

// parseDataRef parses the reference and cache under tx, cat or val.
// Points at or beyond the declared count are dropped.
func parseDataRef(decoder *xml.Decoder) dataRef {
	var r dataRef
	points := map[int]string{}
	ptCount := -1
	curIdx := -1
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "numRef", "numLit":
				r.numeric = true
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					r.formula = strings.TrimSpace(txt)
				}
				depth--
			case "formatCode":
				if txt, err := readElementText(decoder); err == nil {
					r.formatCode = strings.TrimSpace(txt)
				}
				depth--
			case "ptCount":
				ptCount = min(max(attrInt(t, "val", 0), 0), maxPoints)
			case "pt":
				curIdx = attrInt(t, "idx", len(points))
			case "v":
				txt, err := readElementText(decoder)
				if err == nil {
					if curIdx >= 0 {
						points[curIdx] = txt
					} else {
						r.literal = txt
					}
				}
				depth--
			}
		case xml.EndElement:
			if t.Name.Local == "pt" {
				curIdx = -1
			}
			depth--
		}
	}

	limit := maxPoints
	if ptCount >= 0 {
		limit = ptCount
	}
	n := max(ptCount, 0)
	for idx := range points {
		if idx < 0 || idx >= limit {
			delete(points, idx)
		} else if idx+1 > n {
			n = idx + 1
		}
	}
	if n > 0 {
		r.points = make([]string, n)
		for idx, v := range points {
			r.points[idx] = v
		}
	}
	return r
}

// bindEntry builds the bound series view of a decoded entry.
func bindEntry(e *Entry) *Series {
	s := &Series{Name: e.TxValue, NameRef: e.TxRef, entry: e}
	if e.CatRef != "" || len(e.CatCache) > 0 {
		_, col := refStart(e.CatRef)
		s.Category = &CategoricalDataSource{Ref: e.CatRef, Col: col, Labels: e.CatCache}
	}
	if e.ValRef != "" || len(e.ValCache) > 0 {
		_, col := refStart(e.ValRef)
		s.Values = &NumericalDataSource{Ref: e.ValRef, Col: col, Values: e.ValCache, FormatCode: e.FormatCode}
	}
	return s
}

// sheetNameOf returns the sheet referenced by the chart's first formula.
func sheetNameOf(c *Chart) string {
	for _, e := range c.Plot.Entries() {
		for _, ref := range []string{e.ValRef, e.CatRef, e.TxRef} {
			if sheet, _ := SplitRef(ref); sheet != "" {
				return sheet
			}
		}
	}
	return DefaultSheetName
}

// prefixAt returns the namespace prefix of the start tag at raw[start:],
// "" when it has none.
func prefixAt(raw []byte, start int) string {
	if start < 0 || start >= len(raw) || raw[start] != '<' {
		return "c"
	}
	name := raw[start+1:]
	for i, b := range name {
		switch b {
		case ':':
			return string(name[:i])
		case ' ', '\t', '\r', '\n', '>', '/':
			return ""
		}
	}
	return "c"
}

func parseFloats(points []string) []float64 {
	if points == nil {
		return nil
	}
	values := make([]float64, len(points))
	for i, p := range points {
		if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			values[i] = v
		}
	}
	return values
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrInt(se xml.StartElement, name string, def int) int {
	v, _ := attr(se, name)
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}
