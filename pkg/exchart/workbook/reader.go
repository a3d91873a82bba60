package workbook

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/exchart-go/pkg/exchart/models"
	"github.com/xuri/excelize/v2"
)

// ReadSeries reads the dataset stored in the sheet. The first table's range is
// used when the sheet has one; otherwise the bounding box of non-empty cells.
// The first row holds series names, the first column holds categories.
func (s *Sheet) ReadSeries() (*models.ChartRenderData, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return nil, err
	}

	var bounds area
	if len(s.tables) > 0 && s.tables[0].Ref != "" {
		if bounds, err = parseArea(s.tables[0].Ref); err != nil {
			return nil, err
		}
	} else {
		minRow, maxRow, minCol, maxCol := findDataBounds(rows)
		if minRow < 0 {
			return nil, fmt.Errorf("sheet %q holds no data", s.name)
		}
		bounds = area{r1: minRow + 1, c1: minCol + 1, r2: maxRow + 1, c2: maxCol + 1}
	}

	data := &models.ChartRenderData{}
	for col := bounds.c1 + 1; col <= bounds.c2; col++ {
		data.Series = append(data.Series, models.SeriesRenderData{Name: cellAt(rows, bounds.r1, col)})
	}
	for row := bounds.r1 + 1; row <= bounds.r2; row++ {
		data.Categories = append(data.Categories, cellAt(rows, row, bounds.c1))
		for i := range data.Series {
			data.Series[i].Values = append(data.Series[i].Values, toFloat(parseValue(cellAt(rows, row, bounds.c1+1+i))))
		}
	}
	return data, nil
}

// cellAt returns the value at a 1-based row and column, or "" when absent.
func cellAt(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// DataRange returns the range (e.g., "A1:D10") covering the sheet's non-empty cells,
// or "" for an empty sheet.
func (s *Sheet) DataRange() (string, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return "", err
	}
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return "", nil
	}
	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell), nil
}
