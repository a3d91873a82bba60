package chart

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"
)

// span is a byte range [start, end) of the decoded XML.
type span struct {
	start, end int
}

// chartSource records where the edited elements of a decoded chart part sit.
type chartSource struct {
	raw []byte
	// prefix is the namespace prefix of the chart elements ("" for the default namespace).
	prefix string
	// title is the decoded title text.
	title string

	chartOpen   int // just after the c:chart start tag
	titleOpen   int // just after the c:title start tag
	titleSpan   *span
	titleTx     *span
	autoDeleted *span

	barDir   *span
	grouping *span
	marker   *span
	// series covers all c:ser elements of the first plot; serInsert is used when it has none.
	series    *span
	serInsert int
}

// serSource is the source of a decoded c:ser element. Offsets are relative to raw.
type serSource struct {
	raw []byte
	// children holds the spans of idx, order, tx, cat (or xVal) and val (or yVal).
	children map[string]span
	catTag   string
	valTag   string
	// open follows the start tag, closing is the start of the end tag and
	// trailing is the first element that follows the values (-1 if none).
	open, closing, trailing int
}

// setting is a plot-level c:<name val=".."/> element.
type setting struct {
	at   *span
	name string
	val  string
}

// edit replaces raw[start:end] with text; start == end inserts.
type edit struct {
	start, end int
	text       []byte
}

func applyEdits(raw []byte, edits []edit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end < edits[j].end
	})
	var buf bytes.Buffer
	pos := 0
	for _, e := range edits {
		buf.Write(raw[pos:e.start])
		buf.Write(e.text)
		pos = e.end
	}
	buf.Write(raw[pos:])
	return buf.Bytes()
}

// element marshals v as the chart element name, using prefix as its namespace prefix.
func element(prefix, name string, v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: "c:" + name}}); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return withPrefix(buf.Bytes(), prefix), nil
}

func withPrefix(b []byte, prefix string) []byte {
	if prefix == "c" {
		return b
	}
	if prefix != "" {
		prefix += ":"
	}
	b = bytes.ReplaceAll(b, []byte("</c:"), []byte("</"+prefix))
	return bytes.ReplaceAll(b, []byte("<c:"), []byte("<"+prefix))
}

// patch writes the decoded chart part back with the model's title, plot
// settings and series edited in place.
func (c *Chart) patch() ([]byte, error) {
	src := c.src
	var edits []edit
	add := func(start, end int, name string, v any) error {
		text, err := element(src.prefix, name, v)
		if err != nil {
			return err
		}
		edits = append(edits, edit{start, end, text})
		return nil
	}

	if c.Title != src.title {
		var err error
		switch {
		case c.Title == "" && src.titleSpan != nil:
			edits = append(edits, edit{src.titleSpan.start, src.titleSpan.end, nil})
		case c.Title == "":
		case src.titleTx != nil:
			err = add(src.titleTx.start, src.titleTx.end, "tx", richTitle(c.Title))
		case src.titleSpan != nil:
			err = add(src.titleOpen, src.titleOpen, "tx", richTitle(c.Title))
		default:
			err = add(src.chartOpen, src.chartOpen, "title", xmlTitle{Rich: richTitle(c.Title), Overlay: xmlVal{Val: "0"}})
			if err == nil && src.autoDeleted != nil {
				err = add(src.autoDeleted.start, src.autoDeleted.end, "autoTitleDeleted", xmlVal{Val: "0"})
			}
		}
		if err != nil {
			return nil, err
		}
	}

	var settings []setting
	switch p := c.Plot.(type) {
	case *BarPlot:
		settings = []setting{{src.barDir, "barDir", p.Direction}, {src.grouping, "grouping", p.Grouping}}
	case *LinePlot:
		settings = []setting{{src.grouping, "grouping", p.Grouping}, {src.marker, "marker", boolVal(p.Marker)}}
	}
	for _, st := range settings {
		if st.at == nil {
			continue
		}
		if err := add(st.at.start, st.at.end, st.name, xmlVal{Val: st.val}); err != nil {
			return nil, err
		}
	}

	xyPlot := c.Plot.Kind() == KindScatter || c.Plot.Kind() == KindBubble
	var series bytes.Buffer
	for _, e := range c.Plot.Entries() {
		b, err := e.patch(xyPlot, src.prefix)
		if err != nil {
			return nil, err
		}
		series.Write(b)
	}
	if src.series != nil {
		edits = append(edits, edit{src.series.start, src.series.end, series.Bytes()})
	} else {
		edits = append(edits, edit{src.serInsert, src.serInsert, series.Bytes()})
	}

	return applyEdits(src.raw, edits), nil
}

// patch writes the entry as a c:ser element. A decoded entry keeps every
// child except idx, order, tx, cat and val, which are rewritten.
func (e *Entry) patch(xyPlot bool, prefix string) ([]byte, error) {
	if e.src == nil {
		return element(prefix, "ser", encodeSeries(e, xyPlot))
	}
	s := e.src

	catTag, valTag := s.catTag, s.valTag
	if catTag == "" {
		catTag = "cat"
		if xyPlot {
			catTag = "xVal"
		}
	}
	if valTag == "" {
		valTag = "val"
		if xyPlot {
			valTag = "yVal"
		}
	}

	// insertion points for children missing from the source, in schema order
	afterIdx := s.open
	if sp, ok := s.children["idx"]; ok {
		afterIdx = sp.end
	}
	afterOrder := afterIdx
	if sp, ok := s.children["order"]; ok {
		afterOrder = sp.end
	}
	beforeTrailing := s.closing
	if s.trailing >= 0 {
		beforeTrailing = s.trailing
	}
	catAt := beforeTrailing
	if sp, ok := s.children["val"]; ok {
		catAt = sp.start
	}
	valAt := beforeTrailing
	if sp, ok := s.children["cat"]; ok {
		valAt = sp.end
	}

	var edits []edit
	put := func(key string, at int, name string, v any, present bool) error {
		var text []byte
		if present {
			var err error
			if text, err = element(prefix, name, v); err != nil {
				return err
			}
		}
		if sp, ok := s.children[key]; ok {
			edits = append(edits, edit{sp.start, sp.end, text})
		} else if present {
			edits = append(edits, edit{at, at, text})
		}
		return nil
	}

	tx, cat, val := seriesTx(e), seriesCat(e), seriesVal(e)
	steps := []struct {
		key     string
		at      int
		name    string
		v       any
		present bool
	}{
		{"idx", s.open, "idx", xmlVal{Val: strconv.Itoa(e.Idx)}, true},
		{"order", afterIdx, "order", xmlVal{Val: strconv.Itoa(e.Order)}, true},
		{"tx", afterOrder, "tx", tx, tx != nil},
		{"cat", catAt, catTag, cat, cat != nil},
		{"val", valAt, valTag, val, val != nil},
	}
	for _, st := range steps {
		if err := put(st.key, st.at, st.name, st.v, st.present); err != nil {
			return nil, err
		}
	}
	return applyEdits(s.raw, edits), nil
}

func richTitle(title string) xmlTitleTx {
	tx := titleTx(title)
	tx.Rich.XMLNSa = nsA
	return tx
}
