package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/xuri/excelize/v2"
)

// Table is the gateway to one logical table stored in one spreadsheet.
// It never retries and never chooses which row to write; callers pass the
// record index they obtained from their own read.
type Table struct {
	transport     Transport
	logger        *slog.Logger
	Name          string
	SheetID       string
	Tab           string
	inputOption   ValueInputOption
	header        []string
	Schema        grid.Schema
	timeout       time.Duration
	mu            sync.Mutex
	HeaderInRange bool
}

// NewTable creates a gateway for sheetID laid out by schema. With
// headerInRange the first row of tab names the columns; otherwise rows are
// positional and data starts at A2.
func NewTable(transport Transport, logger *slog.Logger, schema grid.Schema, sheetID, tab string, headerInRange bool) *Table {
	return &Table{
		transport:     transport,
		logger:        logger.With("table", schema.Name),
		Name:          schema.Name,
		SheetID:       sheetID,
		Tab:           tab,
		Schema:        schema,
		HeaderInRange: headerInRange,
		inputOption:   UserEntered,
		timeout:       15 * time.Second,
	}
}

// ReadRange is the range Records reads.
func (t *Table) ReadRange() string {
	if t.HeaderInRange {
		return quoteTab(t.Tab)
	}
	return "A2:" + t.Schema.LastColumn()
}

// RowAnchor is the top-left cell of data record index (0-based): the data
// row sits one below the header row.
func (t *Table) RowAnchor(index int) string {
	cell, err := excelize.CoordinatesToCellName(1, index+2)
	if err != nil {
		cell = fmt.Sprintf("A%d", index+2)
	}
	if t.HeaderInRange {
		return quoteTab(t.Tab) + "!" + cell
	}
	return cell
}

// Read fetches rng under the per-call timeout.
func (t *Table) Read(ctx context.Context, rng string) ([][]string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	rows, err := t.transport.Read(callCtx, t.SheetID, rng)
	if err != nil {
		return nil, t.callError(ctx, callCtx, "read", rng, err)
	}
	return rows, nil
}

// Write overwrites the cells at rng under the per-call timeout.
func (t *Table) Write(ctx context.Context, rng string, rows [][]any) error {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.transport.Write(callCtx, t.SheetID, rng, rows, t.inputOption); err != nil {
		return t.callError(ctx, callCtx, "write", rng, err)
	}
	return nil
}

// callError separates caller cancellation from the gateway's own timeout
// and wraps everything else as a transport failure.
func (t *Table) callError(ctx, callCtx context.Context, op, rng string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", t.Name, op, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &common.TransportError{Op: op, SheetID: t.SheetID, Range: rng, Timeout: true, Err: err}
	}
	var te *common.TransportError
	if errors.As(err, &te) {
		return err
	}
	return &common.TransportError{Op: op, SheetID: t.SheetID, Range: rng, Err: err}
}

// Records reads the whole table. Record i lives at RowAnchor(i); blank rows
// are kept so that the correspondence holds.
func (t *Table) Records(ctx context.Context) ([]grid.Record, error) {
	rows, err := t.Read(ctx, t.ReadRange())
	if err != nil {
		return nil, err
	}

	header := t.Schema.Headers()
	if t.HeaderInRange {
		if len(rows) == 0 {
			t.setHeader(nil)
			return []grid.Record{}, nil
		}
		header, rows = rows[0], rows[1:]
		t.setHeader(header)
	}

	records, mismatch := grid.ParseRows(t.Schema, header, rows)
	if !mismatch.Empty() {
		t.logger.Warn("sheet header does not match schema",
			"sheet_id", t.SheetID,
			"missing", mismatch.Missing,
			"unknown", mismatch.Unknown)
	}

	t.logger.Debug("read records", "sheet_id", t.SheetID, "count", len(records))
	return records, nil
}

// WriteRecord overwrites the single row of record index. In the header
// layout the cells follow the header seen by the last Records call; when
// the tab has no header yet the schema headers are written to row 1 first.
func (t *Table) WriteRecord(ctx context.Context, index int, rec grid.Record) error {
	if !t.HeaderInRange {
		return t.writeRows(ctx, t.RowAnchor(index), [][]any{grid.ToRow(t.Schema, rec)})
	}

	t.mu.Lock()
	header := t.header
	t.mu.Unlock()
	if len(header) > 0 {
		return t.writeRows(ctx, t.RowAnchor(index), [][]any{grid.ToHeaderRow(t.Schema, header, rec)})
	}

	header = t.Schema.Headers()
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	row := grid.ToHeaderRow(t.Schema, header, rec)

	if index == 0 {
		if err := t.writeRows(ctx, t.headerAnchor(), [][]any{headerRow, row}); err != nil {
			return err
		}
	} else {
		if err := t.writeRows(ctx, t.headerAnchor(), [][]any{headerRow}); err != nil {
			return err
		}
		if err := t.writeRows(ctx, t.RowAnchor(index), [][]any{row}); err != nil {
			return err
		}
	}

	t.setHeader(header)
	t.logger.Info("wrote missing header row", "sheet_id", t.SheetID, "tab", t.Tab)
	return nil
}

func (t *Table) writeRows(ctx context.Context, anchor string, rows [][]any) error {
	if err := t.Write(ctx, anchor, rows); err != nil {
		return err
	}

	t.logger.Debug("wrote record", "sheet_id", t.SheetID, "anchor", anchor)
	return nil
}

// headerAnchor is the header row's first cell.
func (t *Table) headerAnchor() string {
	if t.Tab == "" {
		return "A1"
	}
	return quoteTab(t.Tab) + "!A1"
}

// setHeader caches header, or forgets it when every cell is blank.
func (t *Table) setHeader(header []string) {
	var cached []string
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			cached = append([]string{}, header...)
			break
		}
	}
	t.mu.Lock()
	t.header = cached
	t.mu.Unlock()
}

func quoteTab(tab string) string {
	if tab == "" {
		return tab
	}
	for _, r := range tab {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
		}
	}
	return tab
}

// Tables bundles the four gateways of one configuration.
type Tables struct {
	Inventory    *Table
	Products     *Table
	TradeHistory *Table
	Profiles     *Table
	Layout       Layout
}

// NewTables builds the gateways described by config on top of transport.
func NewTables(config Config, transport Transport, logger *slog.Logger) *Tables {
	layout := LayoutFor(config.Schema)
	headerInRange := layout.Variant == VariantTyped

	build := func(schema grid.Schema, sheetID string) *Table {
		table := NewTable(transport, logger, schema, sheetID, config.Tab, headerInRange)
		if config.Timeout > 0 {
			table.timeout = config.Timeout
		}
		if config.ValueInputOption != "" {
			table.inputOption = config.ValueInputOption
		}
		return table
	}

	return &Tables{
		Layout:       layout,
		Inventory:    build(layout.Inventory, config.Sheets.Inventory),
		Products:     build(layout.Products, config.Sheets.Products),
		TradeHistory: build(layout.TradeHistory, config.Sheets.TradeHistory),
		Profiles:     build(layout.Profiles, config.Sheets.Profiles),
	}
}

// NewTransport returns the workbook transport when a workbook directory is
// configured and the Google Sheets API transport otherwise.
func NewTransport(ctx context.Context, config Config, logger *slog.Logger) (Transport, error) {
	if config.WorkbookDir != "" {
		return NewWorkbookTransport(config.WorkbookDir, logger)
	}
	return NewAPITransport(ctx, config, logger)
}
