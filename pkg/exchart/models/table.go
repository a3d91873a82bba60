package models

// TableColumn is a single column definition of a table part.
type TableColumn struct {
	// ID is the 1-based column id.
	ID int `json:"id"`
	// Name is the column header.
	Name string `json:"name"`
}

// TableDefinition represents the table part backing a chart's data sheet.
type TableDefinition struct {
	// Name is the table name.
	Name string `json:"name"`
	// Ref is the covered range (e.g., "A1:C4").
	Ref string `json:"ref"`
	// StyleName is the table style, empty for none.
	StyleName string `json:"style_name,omitempty"`
	// Columns holds the column definitions in order.
	Columns []TableColumn `json:"columns"`
}

// ColumnCount returns the number of defined columns.
func (t *TableDefinition) ColumnCount() int {
	return len(t.Columns)
}

// ColumnNames returns the column headers in order.
func (t *TableDefinition) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
