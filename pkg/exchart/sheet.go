package exchart

import "github.com/ukaji3/exchart-go/pkg/exchart/models"

// Sheet is the backing data sheet of a chart. Rows and columns are 0-based.
type Sheet interface {
	// Name returns the sheet name.
	Name() string
	// RowExists reports whether the row is present in the sheet.
	RowExists(row int) bool
	// CellExists reports whether the row has a cell at the column.
	CellExists(row, col int) bool
	// SetCellValue writes a value into a cell.
	SetCellValue(row, col int, value any) error
	// RemoveCell deletes a cell.
	RemoveCell(row, col int) error
	// Tables returns the table definitions of the sheet, in order.
	Tables() []*models.TableDefinition
	// AddTable registers a table definition with the sheet.
	AddTable(t *models.TableDefinition)
}
