package chart

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FormatRange formats a 0-based inclusive cell range as a sheet-qualified
// absolute reference, e.g. FormatRange("Sheet1", 1, 3, 1, 1) = "Sheet1!$B$2:$B$4".
func FormatRange(sheet string, firstRow, lastRow, firstCol, lastCol int) (string, error) {
	start, err := excelize.CoordinatesToCellName(firstCol+1, firstRow+1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(lastCol+1, lastRow+1, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", quoteSheet(sheet), start, end), nil
}

// FormatCell formats a 0-based cell as a sheet-qualified absolute reference.
func FormatCell(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1, true)
	if err != nil {
		return "", err
	}
	return quoteSheet(sheet) + "!" + cell, nil
}

// SplitRef splits a reference such as 'My Sheet'!$A$1:$A$3 into sheet name and range.
func SplitRef(ref string) (sheet, area string) {
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", ref
	}
	sheet = strings.Trim(ref[:idx], "'")
	sheet = strings.ReplaceAll(sheet, "''", "'")
	return sheet, ref[idx+1:]
}

// refStart returns the 0-based row and column of a reference's first cell,
// or (-1, -1) when it cannot be parsed.
func refStart(ref string) (row, col int) {
	_, area := SplitRef(ref)
	first := strings.SplitN(area, ":", 2)[0]
	first = strings.ReplaceAll(first, "$", "")
	c, r, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return -1, -1
	}
	return r - 1, c - 1
}

func quoteSheet(sheet string) string {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if strings.ContainsAny(sheet, " -'!()") {
		return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return sheet
}
