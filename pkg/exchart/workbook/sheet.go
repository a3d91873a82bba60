// Package workbook provides the excelize-backed data sheet of an embedded chart workbook.
package workbook

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exchart-go/pkg/exchart"
	"github.com/ukaji3/exchart-go/pkg/exchart/models"
	"github.com/xuri/excelize/v2"
)

var _ exchart.Sheet = (*Sheet)(nil)

// Sheet is a worksheet of an excelize workbook together with its table definitions.
// Rows and columns are 0-based.
type Sheet struct {
	file   *excelize.File
	name   string
	path   string
	tables []*models.TableDefinition
	// stored holds the names of tables present in the file when loaded.
	stored map[string]bool
	// rowLens caches the cell count of each row. It is read once and then
	// kept current by SetCellValue; writes made through File are not seen.
	rowLens []int
}

// Open opens a workbook file and selects a sheet. An empty sheet name selects the first sheet.
func Open(path, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	s, err := New(f, sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.path = path
	return s, nil
}

// New wraps an open workbook. An empty sheet name selects the first sheet.
func New(f *excelize.File, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	s := &Sheet{file: f, name: sheetName, stored: make(map[string]bool)}
	if err := s.loadTables(); err != nil {
		return nil, err
	}
	return s, nil
}

// File returns the underlying workbook.
func (s *Sheet) File() *excelize.File {
	return s.file
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// RowExists reports whether the row holds any cell value.
func (s *Sheet) RowExists(row int) bool {
	s.loadRows()
	if row < 0 || row >= len(s.rowLens) {
		return false
	}
	return s.rowLens[row] > 0
}

func (s *Sheet) loadRows() {
	if s.rowLens != nil {
		return
	}
	s.rowLens = []int{}
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return
	}
	for _, r := range rows {
		s.rowLens = append(s.rowLens, len(r))
	}
}

// CellExists reports whether the cell holds a value.
func (s *Sheet) CellExists(row, col int) bool {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	v, err := s.file.GetCellValue(s.name, cell)
	return err == nil && v != ""
}

// SetCellValue writes a value into a cell.
func (s *Sheet) SetCellValue(row, col int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := s.file.SetCellValue(s.name, cell, value); err != nil {
		return err
	}
	if value != nil && value != "" {
		s.loadRows()
		for len(s.rowLens) <= row {
			s.rowLens = append(s.rowLens, 0)
		}
		s.rowLens[row] = max(s.rowLens[row], col+1)
	}
	return nil
}

// RemoveCell clears a cell so it holds no value. The row keeps existing.
func (s *Sheet) RemoveCell(row, col int) error {
	return s.SetCellValue(row, col, nil)
}

// Tables returns the table definitions of the sheet.
func (s *Sheet) Tables() []*models.TableDefinition {
	return s.tables
}

// AddTable registers a table definition. It is written to the workbook by Flush.
func (s *Sheet) AddTable(t *models.TableDefinition) {
	s.tables = append(s.tables, t)
}

// loadTables reads the sheet's table parts, taking column names from the header row.
func (s *Sheet) loadTables() error {
	tables, err := s.file.GetTables(s.name)
	if err != nil {
		return fmt.Errorf("failed to read tables: %w", err)
	}
	for _, t := range tables {
		def := &models.TableDefinition{
			Name:      t.Name,
			Ref:       t.Range,
			StyleName: t.StyleName,
			Columns:   []models.TableColumn{},
		}
		rng, err := parseArea(t.Range)
		if err == nil {
			for col := rng.c1; col <= rng.c2; col++ {
				cell, _ := excelize.CoordinatesToCellName(col, rng.r1)
				name, _ := s.file.GetCellValue(s.name, cell)
				def.Columns = append(def.Columns, models.TableColumn{ID: col - rng.c1 + 1, Name: name})
			}
		}
		s.tables = append(s.tables, def)
		s.stored[t.Name] = true
	}
	return nil
}

// Flush writes the table definitions into the workbook: header cells take the
// column names and each table part is replaced with one covering its range.
func (s *Sheet) Flush() error {
	for _, def := range s.tables {
		if def.Ref == "" {
			continue
		}
		rng, err := parseArea(def.Ref)
		if err != nil {
			return fmt.Errorf("table %q: %w", def.Name, err)
		}
		for i, col := range def.Columns {
			if col.Name == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(rng.c1+i, rng.r1)
			if err != nil {
				return err
			}
			if err := s.file.SetCellValue(s.name, cell, col.Name); err != nil {
				return err
			}
		}

		if s.stored[def.Name] {
			if err := s.file.DeleteTable(def.Name); err != nil {
				return fmt.Errorf("failed to replace table %q: %w", def.Name, err)
			}
		}
		table := &excelize.Table{
			Range:     def.Ref,
			Name:      def.Name,
			StyleName: def.StyleName,
		}
		if err := s.file.AddTable(s.name, table); err != nil {
			return fmt.Errorf("failed to write table %q: %w", def.Name, err)
		}
		s.stored[def.Name] = true
	}
	return nil
}

// Save flushes tables and saves the workbook to the path it was opened from.
func (s *Sheet) Save() error {
	if s.path == "" {
		return fmt.Errorf("workbook has no path")
	}
	return s.SaveAs(s.path)
}

// SaveAs flushes tables and saves the workbook to path.
func (s *Sheet) SaveAs(path string) error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.file.SaveAs(path)
}

// Close closes the underlying workbook.
func (s *Sheet) Close() error {
	return s.file.Close()
}

// area is a 1-based inclusive cell range.
type area struct {
	r1, c1, r2, c2 int
}

// parseArea parses a range string like $A$1:$D$10.
func parseArea(ref string) (area, error) {
	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return area{}, fmt.Errorf("invalid range %q", ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return area{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return area{}, err
	}
	return area{r1: r1, c1: c1, r2: r2, c2: c2}, nil
}
