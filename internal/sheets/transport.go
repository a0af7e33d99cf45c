package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/xuri/excelize/v2"
)

// ValueInputOption controls how the backend interprets written cells.
type ValueInputOption string

// Value input options.
const (
	Raw         ValueInputOption = "RAW"
	UserEntered ValueInputOption = "USER_ENTERED"
)

// Transport reads and writes cell ranges of a spreadsheet. Implementations
// report failures as *common.TransportError where they can.
type Transport interface {
	// Read returns the rows of rng, trailing empty cells and rows trimmed.
	Read(ctx context.Context, sheetID, rng string) ([][]string, error)
	// Write overwrites the cells starting at the top-left corner of rng.
	Write(ctx context.Context, sheetID, rng string, rows [][]any, opt ValueInputOption) error
}

// Range is a parsed A1 range. Rows and columns are 1-based; a zero end
// means the range is open in that direction.
type Range struct {
	Tab      string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange parses A1 notation: "Sheet1", "A2:G", "Sheet1!A5", "'My tab'!B2:C9".
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	var r Range
	cells := s
	if i := strings.LastIndex(s, "!"); i >= 0 {
		r.Tab = unquoteTab(s[:i])
		cells = s[i+1:]
	} else if !looksLikeCells(s) {
		return Range{Tab: unquoteTab(s), StartCol: 1, StartRow: 1}, nil
	}

	start, end, hasEnd := strings.Cut(cells, ":")
	col, row, err := splitCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	r.StartCol, r.StartRow = col, row
	if r.StartCol == 0 {
		r.StartCol = 1
	}
	if r.StartRow == 0 {
		r.StartRow = 1
	}

	if !hasEnd {
		if row == 0 {
			// "A" alone is the whole column.
			r.EndCol = r.StartCol
			return r, nil
		}
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, nil
	}

	r.EndCol, r.EndRow, err = splitCell(end)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return r, nil
}

// splitCell parses "B7", "B" or "7" into column and row numbers (0 = absent).
func splitCell(cell string) (col, row int, err error) {
	cell = strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(cell, "$", "")))
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	letters, digits := cell[:i], cell[i:]
	if letters == "" && digits == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	if letters != "" {
		if col, err = excelize.ColumnNameToNumber(letters); err != nil {
			return 0, 0, err
		}
	}
	if digits != "" {
		if row, err = strconv.Atoi(digits); err != nil || row < 1 {
			return 0, 0, fmt.Errorf("bad row %q", digits)
		}
	}
	return col, row, nil
}

func looksLikeCells(s string) bool {
	start, _, _ := strings.Cut(s, ":")
	_, _, err := splitCell(start)
	if err != nil {
		return false
	}
	// A bare word such as "Sheet" would parse as columns; require a digit or a colon.
	return strings.ContainsAny(s, "0123456789:")
}

func unquoteTab(tab string) string {
	if len(tab) >= 2 && tab[0] == '\'' && tab[len(tab)-1] == '\'' {
		return strings.ReplaceAll(tab[1:len(tab)-1], "''", "'")
	}
	return tab
}

// sliceRows cuts r out of a full sheet and trims trailing empties the way
// the Sheets API does.
func sliceRows(all [][]string, r Range) [][]string {
	first := r.StartRow - 1
	last := len(all)
	if r.EndRow > 0 && r.EndRow < last {
		last = r.EndRow
	}
	if first >= last {
		return [][]string{}
	}

	out := make([][]string, 0, last-first)
	for _, row := range all[first:last] {
		lo := r.StartCol - 1
		hi := len(row)
		if r.EndCol > 0 && r.EndCol < hi {
			hi = r.EndCol
		}
		var cells []string
		if lo < hi {
			cells = append([]string{}, row[lo:hi]...)
		}
		out = append(out, trimCells(cells))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func trimCells(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	if cells == nil {
		return []string{}
	}
	return cells
}

// cellString renders a written value the way it lands in a sheet.
func cellString(v any) string {
	return grid.Cells([][]any{{v}})[0][0]
}
