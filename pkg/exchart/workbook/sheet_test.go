package workbook

import (
	"path/filepath"
	"testing"

	"github.com/ukaji3/exchart-go/pkg/exchart/models"
	"github.com/xuri/excelize/v2"
)

func TestCellAccess(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	s, err := New(f, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Name() != "Sheet1" {
		t.Errorf("Expected Sheet1, got %q", s.Name())
	}

	if err := s.SetCellValue(0, 1, "Sales"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if err := s.SetCellValue(2, 2, 42.5); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}

	if !s.RowExists(0) || !s.RowExists(2) {
		t.Errorf("Expected rows 0 and 2 to exist")
	}
	if s.RowExists(1) || s.RowExists(10) || s.RowExists(-1) {
		t.Errorf("Expected rows 1, 10 and -1 to be missing")
	}
	if !s.CellExists(0, 1) || !s.CellExists(2, 2) {
		t.Errorf("Expected written cells to exist")
	}
	if s.CellExists(0, 0) {
		t.Errorf("Expected A1 to be empty")
	}

	v, _ := f.GetCellValue("Sheet1", "C3")
	if v != "42.5" {
		t.Errorf("Expected C3 = 42.5, got %q", v)
	}

	if err := s.RemoveCell(2, 2); err != nil {
		t.Fatalf("RemoveCell failed: %v", err)
	}
	if s.CellExists(2, 2) {
		t.Errorf("Expected C3 to be removed")
	}
}

func TestRowExistsTracksWrites(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Month")

	s, err := New(f, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !s.RowExists(0) {
		t.Errorf("Expected row 0 from the workbook to exist")
	}
	if s.RowExists(4) {
		t.Errorf("Expected row 4 to be missing")
	}

	s.SetCellValue(4, 2, "x")
	if !s.RowExists(4) {
		t.Errorf("Expected row 4 to exist after a write")
	}
	s.SetCellValue(6, 0, nil)
	if s.RowExists(6) {
		t.Errorf("Expected row 6 to stay missing after clearing a cell")
	}
	s.RemoveCell(4, 2)
	if !s.RowExists(4) {
		t.Errorf("Expected row 4 to remain after removing its cell")
	}
}

func TestNewUnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := New(f, "Missing"); err == nil {
		t.Errorf("Expected error for unknown sheet")
	}
}

func TestFlushAndReopen(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	s, err := New(f, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, label := range []string{"Q1", "Q2", "Q3"} {
		s.SetCellValue(i+1, 0, label)
		s.SetCellValue(i+1, 1, (i+1)*10)
		s.SetCellValue(i+1, 2, (i+1)*5)
	}
	s.AddTable(&models.TableDefinition{
		Name:    "Table1",
		Ref:     "A1:C4",
		Columns: []models.TableColumn{{ID: 1, Name: ""}, {ID: 2, Name: "Sales"}, {ID: 3, Name: "Cost"}},
	})

	tmpFile := filepath.Join(t.TempDir(), "data.xlsx")
	if err := s.SaveAs(tmpFile); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	reopened, err := Open(tmpFile, "Sheet1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reopened.Close()

	tables := reopened.Tables()
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if tables[0].Name != "Table1" || tables[0].Ref != "A1:C4" {
		t.Errorf("Unexpected table %+v", tables[0])
	}
	names := tables[0].ColumnNames()
	if len(names) != 3 || names[1] != "Sales" || names[2] != "Cost" {
		t.Errorf("Unexpected column names %v", names)
	}

	// shrink and write again over the stored table
	tables[0].Ref = "A1:B4"
	tables[0].Columns = tables[0].Columns[:2]
	if err := reopened.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := reopened.File().GetTables("Sheet1")
	if err != nil {
		t.Fatalf("GetTables failed: %v", err)
	}
	if len(got) != 1 || got[0].Range != "A1:B4" {
		t.Errorf("Expected a single A1:B4 table, got %+v", got)
	}
}

func TestReadSeriesWithoutTable(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "B2", &[]interface{}{"", "North", "South"})
	f.SetSheetRow("Sheet1", "B3", &[]interface{}{"Jan", 1, 2.5})
	f.SetSheetRow("Sheet1", "B4", &[]interface{}{"Feb", 3, "n/a"})

	s, err := New(f, "Sheet1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	data, err := s.ReadSeries()
	if err != nil {
		t.Fatalf("ReadSeries failed: %v", err)
	}

	if len(data.Categories) != 2 || data.Categories[0] != "Jan" || data.Categories[1] != "Feb" {
		t.Errorf("Unexpected categories %v", data.Categories)
	}
	if len(data.Series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(data.Series))
	}
	if data.Series[0].Name != "North" || data.Series[1].Name != "South" {
		t.Errorf("Unexpected series names %q, %q", data.Series[0].Name, data.Series[1].Name)
	}
	if data.Series[1].Values[0] != 2.5 || data.Series[1].Values[1] != 0 {
		t.Errorf("Unexpected values %v", data.Series[1].Values)
	}

	rng, err := s.DataRange()
	if err != nil {
		t.Fatalf("DataRange failed: %v", err)
	}
	if rng != "B2:D4" {
		t.Errorf("Expected B2:D4, got %q", rng)
	}
}

func TestReadSeriesEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	s, _ := New(f, "")
	if _, err := s.ReadSeries(); err == nil {
		t.Errorf("Expected error for empty sheet")
	}
	if rng, _ := s.DataRange(); rng != "" {
		t.Errorf("Expected empty range, got %q", rng)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		ref      string
		expected area
		wantErr  bool
	}{
		{"A1:C4", area{r1: 1, c1: 1, r2: 4, c2: 3}, false},
		{"$B$2:$AA$10", area{r1: 2, c1: 2, r2: 10, c2: 27}, false},
		{"A1", area{}, true},
		{"A1:??", area{}, true},
	}

	for _, tt := range tests {
		result, err := parseArea(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseArea(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if result != tt.expected {
			t.Errorf("parseArea(%q) = %+v, expected %+v", tt.ref, result, tt.expected)
		}
	}
}
