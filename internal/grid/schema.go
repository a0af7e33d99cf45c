// Package grid converts between raw spreadsheet cell grids and field-keyed
// records. A Schema describes the mapping as data: the ordered columns of a
// sheet, the field each column feeds and how its cells are typed.
package grid

import (
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// ColumnType tells encoders and decoders how a column's cells are formatted.
type ColumnType int

// Column types.
const (
	Text ColumnType = iota
	Number
	Money
	Date
)

// Column maps one sheet column onto a record field.
type Column struct {
	Header  string // header text as it appears (or would appear) in the sheet
	Field   string // record key, shared by every schema variant of a table
	Type    ColumnType
	Derived bool // written for human readers, never read back
}

// Schema is the ordered column layout of one table in one sheet variant.
type Schema struct {
	Name    string
	Columns []Column
}

// NormalizeHeader lower-cases a header cell and folds every run of spaces,
// dashes and underscores into a single underscore.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	sep := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Headers returns the header row the schema describes.
func (s Schema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Column looks up the column feeding field.
func (s Schema) Column(field string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// Width is the number of columns in the schema.
func (s Schema) Width() int {
	return len(s.Columns)
}

// LastColumn is the letter name of the right-most column, e.g. "G".
func (s Schema) LastColumn() string {
	if len(s.Columns) == 0 {
		return "A"
	}
	name, err := excelize.ColumnNumberToName(len(s.Columns))
	if err != nil {
		return "A"
	}
	return name
}
