package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/xuri/excelize/v2"
)

// WorkbookTransport keeps each spreadsheet as a local .xlsx file named after
// its sheet id. It stands in for the remote API during offline work; a
// missing workbook reads as empty and is created on first write.
type WorkbookTransport struct {
	logger *slog.Logger
	dir    string
	mu     sync.Mutex
}

// NewWorkbookTransport serves workbooks from dir, creating it if needed.
func NewWorkbookTransport(dir string, logger *slog.Logger) (*WorkbookTransport, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create workbook directory: %w", err)
	}
	return &WorkbookTransport{dir: dir, logger: logger}, nil
}

// Path is the file backing sheetID.
func (w *WorkbookTransport) Path(sheetID string) string {
	return filepath.Join(w.dir, sheetID+".xlsx")
}

// Read implements Transport.
func (w *WorkbookTransport) Read(ctx context.Context, sheetID, rng string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return nil, &common.TransportError{Op: "read", SheetID: sheetID, Range: rng, Status: 400, Message: err.Error(), Err: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.Path(sheetID))
	if errors.Is(err, fs.ErrNotExist) {
		return [][]string{}, nil
	}
	if err != nil {
		return nil, &common.TransportError{Op: "read", SheetID: sheetID, Range: rng, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			w.logger.Warn("failed to close workbook", "sheet_id", sheetID, "error", closeErr)
		}
	}()

	tab := r.Tab
	if tab == "" {
		tab = f.GetSheetName(0)
	}
	if idx, _ := f.GetSheetIndex(tab); idx < 0 {
		return [][]string{}, nil
	}

	all, err := f.GetRows(tab)
	if err != nil {
		return nil, &common.TransportError{Op: "read", SheetID: sheetID, Range: rng, Err: err}
	}

	rows := sliceRows(all, r)
	w.logger.Debug("read workbook range", "sheet_id", sheetID, "range", rng, "rows", len(rows))
	return rows, nil
}

// Write implements Transport.
func (w *WorkbookTransport) Write(ctx context.Context, sheetID, rng string, rows [][]any, opt ValueInputOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Status: 400, Message: err.Error(), Err: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := w.Path(sheetID)
	f, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
	} else if err != nil {
		return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			w.logger.Warn("failed to close workbook", "sheet_id", sheetID, "error", closeErr)
		}
	}()

	tab := r.Tab
	if tab == "" {
		tab = f.GetSheetName(0)
	}
	if idx, _ := f.GetSheetIndex(tab); idx < 0 {
		if _, err := f.NewSheet(tab); err != nil {
			return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Err: err}
		}
	}

	for i, values := range rows {
		for j, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(r.StartCol+j, r.StartRow+i)
			if err != nil {
				return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Status: 400, Message: err.Error(), Err: err}
			}
			if err := setCell(f, tab, cell, v, opt); err != nil {
				return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &common.TransportError{Op: "write", SheetID: sheetID, Range: rng, Err: err}
	}

	w.logger.Debug("wrote workbook range", "sheet_id", sheetID, "range", rng, "rows", len(rows))
	return nil
}

// setCell stores RAW input verbatim; USER_ENTERED numbers become numeric
// cells as they would in a spreadsheet UI.
func setCell(f *excelize.File, tab, cell string, v any, opt ValueInputOption) error {
	s := cellString(v)
	if opt == UserEntered {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return f.SetCellFloat(tab, cell, n, -1, 64)
		}
	}
	return f.SetCellStr(tab, cell, s)
}
