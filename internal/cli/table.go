package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Table writes aligned columns with a styled header and a rule under it.
type Table struct {
	w       *tabwriter.Writer
	columns int
}

// NewTable writes the header row to out and returns the table.
func NewTable(out io.Writer, headers ...string) (*Table, error) {
	t := &Table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0), columns: len(headers)}

	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = TableHeaderStyle.Render(h)
		rules[i] = strings.Repeat("─", max(utf8.RuneCountInString(h), 4))
	}
	if err := t.line(styled); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := t.line(rules); err != nil {
		return nil, fmt.Errorf("failed to write separator: %w", err)
	}
	return t, nil
}

// Row writes one row; missing cells are left blank.
func (t *Table) Row(cells ...string) error {
	for len(cells) < t.columns {
		cells = append(cells, "")
	}
	if err := t.line(cells); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Flush aligns and writes everything buffered so far.
func (t *Table) Flush() error {
	return t.w.Flush()
}

func (t *Table) line(cells []string) error {
	_, err := fmt.Fprintln(t.w, strings.Join(cells, "\t"))
	return err
}
