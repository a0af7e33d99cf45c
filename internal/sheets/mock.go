package sheets

import (
	"context"
	"sync"
)

// MockTransport is an in-memory Transport for tests. Each sheet id holds a
// full grid starting at A1 of a single tab.
type MockTransport struct {
	ReadFunc   func(ctx context.Context, sheetID, rng string) ([][]string, error)
	WriteFunc  func(ctx context.Context, sheetID, rng string, rows [][]any, opt ValueInputOption) error
	grids      map[string][][]string
	ReadCalls  []ReadCall
	WriteCalls []WriteCall
	mu         sync.Mutex
}

// ReadCall records a single call to Read.
type ReadCall struct {
	SheetID string
	Range   string
}

// WriteCall records a single call to Write.
type WriteCall struct {
	SheetID string
	Range   string
	Option  ValueInputOption
	Rows    [][]any
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		grids: make(map[string][][]string),
	}
}

// SetGrid replaces the content of a sheet.
func (m *MockTransport) SetGrid(sheetID string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string{}, row...)
	}
	m.grids[sheetID] = cp
}

// Grid returns a copy of a sheet's content.
func (m *MockTransport) Grid(sheetID string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.grids[sheetID]
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string{}, row...)
	}
	return cp
}

// Read implements Transport.
func (m *MockTransport) Read(ctx context.Context, sheetID, rng string) ([][]string, error) {
	m.mu.Lock()
	m.ReadCalls = append(m.ReadCalls, ReadCall{SheetID: sheetID, Range: rng})
	readFunc := m.ReadFunc
	m.mu.Unlock()

	if readFunc != nil {
		return readFunc(ctx, sheetID, rng)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return sliceRows(m.grids[sheetID], r), nil
}

// Write implements Transport.
func (m *MockTransport) Write(ctx context.Context, sheetID, rng string, rows [][]any, opt ValueInputOption) error {
	m.mu.Lock()
	m.WriteCalls = append(m.WriteCalls, WriteCall{SheetID: sheetID, Range: rng, Rows: rows, Option: opt})
	writeFunc := m.WriteFunc
	m.mu.Unlock()

	if writeFunc != nil {
		return writeFunc(ctx, sheetID, rng, rows, opt)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := ParseRange(rng)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.grids[sheetID] = writeCells(m.grids[sheetID], r.StartRow, r.StartCol, rows)
	return nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockTransport) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// GetReadCalls returns a copy of all read calls.
func (m *MockTransport) GetReadCalls() []ReadCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ReadCall, len(m.ReadCalls))
	copy(calls, m.ReadCalls)
	return calls
}

// AssertWriteCalled verifies that Write was called the expected number of times.
func (m *MockTransport) AssertWriteCalled(t interface{ Fatalf(string, ...any) }, expectedCalls int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.WriteCalls) != expectedCalls {
		t.Fatalf("expected Write to be called %d times, but was called %d times", expectedCalls, len(m.WriteCalls))
	}
}

// SetReadError makes every subsequent Read fail with err.
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadFunc = func(context.Context, string, string) ([][]string, error) {
		return nil, err
	}
}

// SetWriteError makes every subsequent Write fail with err.
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, string, string, [][]any, ValueInputOption) error {
		return err
	}
}

// Reset clears all recorded calls and injected behavior; sheet content stays.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadCalls = nil
	m.WriteCalls = nil
	m.ReadFunc = nil
	m.WriteFunc = nil
}

// writeCells overwrites a block of cells anchored at (row, col), growing the
// grid as needed. Nil values leave their cell alone.
func writeCells(all [][]string, row, col int, rows [][]any) [][]string {
	for i, values := range rows {
		r := row - 1 + i
		for len(all) <= r {
			all = append(all, []string{})
		}
		for j, v := range values {
			if v == nil {
				continue
			}
			c := col - 1 + j
			for len(all[r]) <= c {
				all[r] = append(all[r], "")
			}
			all[r][c] = cellString(v)
		}
	}
	return all
}
