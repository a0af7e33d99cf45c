package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(variant Variant) Config {
	config := DefaultConfig()
	config.APIKey = "key"
	config.Schema = variant
	config.Sheets = validSheetIDs()
	return config
}

func TestTable_Ranges(t *testing.T) {
	mock := NewMockTransport()

	legacy := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())
	assert.Equal(t, "A2:G", legacy.TradeHistory.ReadRange())
	assert.Equal(t, "A2:G", legacy.Inventory.ReadRange())
	assert.Equal(t, "A2:F", legacy.Products.ReadRange())
	assert.Equal(t, "A2:I", legacy.Profiles.ReadRange())
	assert.Equal(t, "A2", legacy.TradeHistory.RowAnchor(0))
	assert.Equal(t, "A7", legacy.TradeHistory.RowAnchor(5))

	typed := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())
	assert.Equal(t, "Sheet1", typed.Inventory.ReadRange())
	assert.Equal(t, "Sheet1!A5", typed.Inventory.RowAnchor(3))
	assert.True(t, typed.Inventory.HeaderInRange)
	assert.Equal(t, "inv-sheet", typed.Inventory.SheetID)
	assert.Equal(t, "trade_history", typed.TradeHistory.Name)
}

func TestTable_RecordsLegacy(t *testing.T) {
	mock := NewMockTransport()
	mock.SetGrid("inv-sheet", [][]string{
		{"Product ID", "Name", "Category", "Qty", "Price", "Cost", "Status"},
		{"P1", "Rice", "Grains", "10", "2.5", "2", "in_stock"},
		{"P2", "Corn"},
		{},
		{"P4", "Jute", "Fibre", "3"},
	})
	tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())

	records, err := tables.Inventory.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "P1", records[0].Text(FieldID))
	assert.Equal(t, 10.0, records[0].Number(FieldQuantity))
	assert.Equal(t, "Corn", records[1].Text(FieldProductName))
	assert.Equal(t, "", records[1].Text(FieldCategory))
	assert.Equal(t, "", records[2].Text(FieldID))
	assert.Equal(t, "P4", records[3].Text(FieldID))
	_, hasStatus := records[0][FieldStatus]
	assert.False(t, hasStatus)

	calls := mock.GetReadCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, ReadCall{SheetID: "inv-sheet", Range: "A2:G"}, calls[0])
}

func TestTable_RecordsTyped(t *testing.T) {
	mock := NewMockTransport()
	mock.SetGrid("prod-sheet", [][]string{
		{"Name", "ID", "Base Price", "notes", "available-for"},
		{"Seeds", "prod-1", "12.5", "fresh", "both"},
		{"Plough", "prod-2"},
	})
	tables := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())

	records, err := tables.Products.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "prod-1", records[0].Text(FieldID))
	assert.Equal(t, "Seeds", records[0].Text(FieldName))
	assert.Equal(t, "12.5", records[0].Text(FieldBasePrice))
	assert.Equal(t, "both", records[0].Text(FieldAvailableFor))
	assert.Equal(t, "", records[1].Text(FieldBasePrice))
}

func TestTable_RecordsTypedEmptySheet(t *testing.T) {
	mock := NewMockTransport()
	tables := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())

	records, err := tables.Profiles.Records(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestTable_WriteRecordLegacy(t *testing.T) {
	mock := NewMockTransport()
	tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())

	rec := grid.Record{
		FieldDate:        "2025-03-04T10:30:00.000Z",
		FieldTradeID:     "TRD000006",
		FieldFarmerUID:   "farmer-1",
		FieldRetailerUID: "retailer-1",
		FieldAmount:      "56",
		FieldStatus:      "pending",
	}
	require.NoError(t, tables.TradeHistory.WriteRecord(context.Background(), 5, rec))

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "trade-sheet", calls[0].SheetID)
	assert.Equal(t, "A7", calls[0].Range)
	assert.Equal(t, UserEntered, calls[0].Option)
	assert.Equal(t, [][]any{{"2025-03-04T10:30:00.000Z", "TRD000006", "farmer-1", "retailer-1", "56", "pending", ""}}, calls[0].Rows)
}

func TestTable_WriteRecordFollowsSheetHeader(t *testing.T) {
	mock := NewMockTransport()
	mock.SetGrid("profile-sheet", [][]string{
		{"name", "uid", "notes", "role"},
		{"Karim", "farmer-1", "keep me", "farmer"},
	})
	tables := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())
	ctx := context.Background()

	records, err := tables.Profiles.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	rec[FieldName] = "Karim Uddin"
	require.NoError(t, tables.Profiles.WriteRecord(ctx, 0, rec))

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Sheet1!A2", calls[0].Range)
	assert.Equal(t, [][]string{
		{"name", "uid", "notes", "role"},
		{"Karim Uddin", "farmer-1", "keep me", "farmer"},
	}, mock.Grid("profile-sheet"))
}

func TestTable_WriteRecordEmptyTypedTabWritesHeader(t *testing.T) {
	mock := NewMockTransport()
	tables := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())
	ctx := context.Background()

	records, err := tables.Profiles.Records(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	require.NoError(t, tables.Profiles.WriteRecord(ctx, 0, grid.Record{FieldUID: "farmer-1", FieldName: "Karim"}))

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Sheet1!A1", calls[0].Range)
	require.Len(t, calls[0].Rows, 2)
	assert.Equal(t, FieldUID, calls[0].Rows[0][0])

	records, err = tables.Profiles.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "farmer-1", records[0].Text(FieldUID))
	assert.Equal(t, "Karim", records[0].Text(FieldName))

	// Header now cached: the next row goes below it alone.
	require.NoError(t, tables.Profiles.WriteRecord(ctx, 1, grid.Record{FieldUID: "retailer-1"}))
	calls = mock.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Sheet1!A3", calls[1].Range)
	assert.Len(t, calls[1].Rows, 1)
}

func TestTable_WriteRecordBlankHeaderRow(t *testing.T) {
	mock := NewMockTransport()
	mock.SetGrid("profile-sheet", [][]string{{"", ""}})
	tables := NewTables(testConfig(VariantTyped), mock, common.DiscardLogger())
	ctx := context.Background()

	_, err := tables.Profiles.Records(ctx)
	require.NoError(t, err)
	require.NoError(t, tables.Profiles.WriteRecord(ctx, 0, grid.Record{FieldUID: "farmer-1"}))

	records, err := tables.Profiles.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "farmer-1", records[0].Text(FieldUID))
}

func TestTable_Timeout(t *testing.T) {
	mock := NewMockTransport()
	mock.ReadFunc = func(ctx context.Context, _, _ string) ([][]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())
	tables.Inventory.timeout = 10 * time.Millisecond

	_, err := tables.Inventory.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTransport))

	var te *common.TransportError
	require.True(t, errors.As(err, &te))
	assert.True(t, te.Timeout)
	assert.Equal(t, "read", te.Op)
	assert.Equal(t, "A2:G", te.Range)
	assert.Contains(t, err.Error(), "timed out")
}

func TestTable_CallerCancellation(t *testing.T) {
	mock := NewMockTransport()
	tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tables.Products.Records(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, common.ErrTransport))

	err = tables.Products.WriteRecord(ctx, 0, grid.Record{FieldID: "p"})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, mock.Grid("prod-sheet"))
}

func TestTable_TransportFailures(t *testing.T) {
	t.Run("plain error is wrapped", func(t *testing.T) {
		mock := NewMockTransport()
		mock.SetReadError(errors.New("connection reset"))
		tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())

		_, err := tables.Profiles.Records(context.Background())
		require.Error(t, err)

		var te *common.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "profile-sheet", te.SheetID)
		assert.False(t, te.Timeout)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("remote status is preserved", func(t *testing.T) {
		mock := NewMockTransport()
		mock.SetWriteError(&common.TransportError{Op: "write", SheetID: "trade-sheet", Range: "A2", Status: 403, Message: "The caller does not have permission"})
		tables := NewTables(testConfig(VariantLegacy), mock, common.DiscardLogger())

		err := tables.TradeHistory.WriteRecord(context.Background(), 0, grid.Record{})
		require.Error(t, err)

		var te *common.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 403, te.Status)
		assert.Equal(t, "The caller does not have permission", te.Message)
	})
}

func TestNewTables_Options(t *testing.T) {
	config := testConfig(VariantLegacy)
	config.Timeout = 3 * time.Second
	config.ValueInputOption = Raw

	tables := NewTables(config, NewMockTransport(), common.DiscardLogger())
	assert.Equal(t, 3*time.Second, tables.Inventory.timeout)
	assert.Equal(t, Raw, tables.Profiles.inputOption)
	assert.Equal(t, VariantLegacy, tables.Layout.Variant)
}

func TestNewTransport_Workbook(t *testing.T) {
	config := testConfig(VariantLegacy)
	config.APIKey = ""
	config.WorkbookDir = t.TempDir()

	transport, err := NewTransport(context.Background(), config, common.DiscardLogger())
	require.NoError(t, err)
	assert.IsType(t, &WorkbookTransport{}, transport)
}
