package grid

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one data row keyed by schema field. Absent cells read as "".
type Record map[string]string

// Text returns the raw cell for field.
func (r Record) Text(field string) string {
	return r[field]
}

// Number returns the cell for field under the lenient numeric policy.
func (r Record) Number(field string) float64 {
	return ParseNumber(r[field])
}

// Money returns the cell for field as a decimal under the lenient policy.
func (r Record) Money(field string) decimal.Decimal {
	return ParseMoney(r[field])
}

// Time returns the cell for field as a timestamp; invalid input is the zero time.
func (r Record) Time(field string) time.Time {
	return ParseDate(r[field])
}

// Mismatch lists the normalized header names that did not line up with a schema.
type Mismatch struct {
	Missing []string // schema columns absent from the header row
	Unknown []string // header cells no schema column claims
}

// Empty reports whether header and schema agree.
func (m Mismatch) Empty() bool {
	return len(m.Missing) == 0 && len(m.Unknown) == 0
}

// ParseRows turns a header row and data rows into records. Rows shorter than
// the header are padded with empty cells; extra cells are ignored. An empty
// header yields no records.
func ParseRows(schema Schema, header []string, rows [][]string) ([]Record, Mismatch) {
	var mismatch Mismatch
	if len(header) == 0 {
		return []Record{}, mismatch
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	claimed := make(map[string]bool, len(schema.Columns))
	positions := make([]int, len(schema.Columns))
	for i, col := range schema.Columns {
		key := NormalizeHeader(col.Header)
		claimed[key] = true
		pos, ok := index[key]
		if !ok {
			pos = -1
			if !col.Derived {
				mismatch.Missing = append(mismatch.Missing, key)
			}
		}
		positions[i] = pos
	}
	for _, h := range header {
		key := NormalizeHeader(h)
		if key != "" && !claimed[key] {
			mismatch.Unknown = append(mismatch.Unknown, key)
		}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(schema.Columns))
		for i, col := range schema.Columns {
			if col.Derived {
				continue
			}
			rec[col.Field] = cellAt(row, positions[i])
		}
		records = append(records, rec)
	}
	return records, mismatch
}

// ToRow lays out a record in schema column order. Fields the record lacks
// become empty cells.
func ToRow(schema Schema, rec Record) []any {
	row := make([]any, len(schema.Columns))
	for i, col := range schema.Columns {
		row[i] = rec[col.Field]
	}
	return row
}

// ToHeaderRow lays out a record following an existing header row. Header
// cells no column claims become nil so the backend leaves them untouched.
func ToHeaderRow(schema Schema, header []string, rec Record) []any {
	fields := make(map[string]string, len(schema.Columns))
	for _, col := range schema.Columns {
		fields[NormalizeHeader(col.Header)] = col.Field
	}

	row := make([]any, len(header))
	for i, h := range header {
		if f, ok := fields[NormalizeHeader(h)]; ok {
			row[i] = rec[f]
		}
	}
	return row
}

// Cells converts an API value grid into strings. Nil cells become "" and
// numbers are written without exponents so numeric ids survive.
func Cells(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			switch c := v.(type) {
			case string:
				cells[j] = c
			case float64:
				cells[j] = FormatNumber(c)
			default:
				cells[j] = fmt.Sprint(c)
			}
		}
		out[i] = cells
	}
	return out
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
