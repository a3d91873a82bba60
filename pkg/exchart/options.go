// Package exchart synchronizes OOXML chart parts and their backing data sheets
// with a rendered dataset.
package exchart

// Layout constants of the backing data sheet (0-based).
const (
	// FirstRow is the first data row; row 0 holds the series names.
	FirstRow = 1
	// CategoryCol is the column holding the category labels.
	CategoryCol = 0
	// ValueStartCol is the column of the first series.
	ValueStartCol = 1
)

// Options configures synchronization behavior.
type Options struct {
	// TableName is the name given to a table created for a sheet without one.
	TableName string
	// TableStyle is the style given to a created table. Empty for none.
	TableStyle string
	// CategoryHeader is the header written above the category column.
	// If nil, the header cell is left untouched.
	CategoryHeader *string
	// FormatCode is the number format recorded on value data sources.
	FormatCode string
}

// DefaultOptions returns default synchronization options.
func DefaultOptions() Options {
	return Options{
		TableName:  "Table1",
		TableStyle: "TableStyleMedium2",
		FormatCode: "General",
	}
}

func (o Options) tableName() string {
	if o.TableName == "" {
		return "Table1"
	}
	return o.TableName
}
