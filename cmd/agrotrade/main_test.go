package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/sheets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkbooks points the command at a temporary workbook directory and
// seeds the legacy tables.
func setupWorkbooks(t *testing.T) *sheets.WorkbookTransport {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	for _, name := range []string{
		"GOOGLE_SHEETS_API_KEY", "GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "AGROTRADE_SCHEMA",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Setenv("AGROTRADE_WORKBOOK_DIR", dir)
	t.Setenv("INVENTORY_SHEET_ID", "inventory")
	t.Setenv("PRODUCTS_SHEET_ID", "products")
	t.Setenv("TRADE_HISTORY_SHEET_ID", "trades")
	t.Setenv("PROFILES_SHEET_ID", "profiles")

	transport, err := sheets.NewWorkbookTransport(dir, common.DiscardLogger())
	require.NoError(t, err)

	seed := func(sheetID string, rows [][]any) {
		require.NoError(t, transport.Write(context.Background(), sheetID, "A1", rows, sheets.Raw))
	}
	seed("inventory", [][]any{
		{"productId", "productName", "category", "quantity", "listPrice", "costPrice", "status"},
		{"farmer-1-rice", "Rice", "Grains", "10", "5", "4", ""},
		{"farmer-1-corn", "Corn", "Grains", "3", "2", "1", ""},
		{"farmer-2-jute", "Jute", "Fibre", "7", "1", "1", ""},
	})
	seed("products", [][]any{
		{"productId", "name", "category", "description", "price", "imageUrl"},
		{"farmer-1-rice", "Rice", "Grains", "Aromatic", "5.5", ""},
	})
	seed("profiles", [][]any{
		{"uid", "name", "role", "division", "district", "subDistrict", "contact", "about", "avatarUrl"},
		{"farmer-1", "Karim", "farmer", "Dhaka", "Gazipur", "", "+880", "", ""},
		{"retailer-1", "Rahim", "retailer", "Khulna", "Jessore", "", "", "", ""},
	})

	return transport
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	setupWorkbooks(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "agrotrade dev")
}

func TestInventoryList(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "inventory", "list", "--user", "farmer-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Rice")
	assert.Contains(t, out, "Corn")
	assert.NotContains(t, out, "Jute")
	assert.Contains(t, out, "2 items, total value 56.00, 0 low on stock")
}

func TestInventoryCatalog(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "inventory", "catalog", "--user", "farmer-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Aromatic")
	assert.Contains(t, out, "unlisted")

	_, err = run(t, "inventory", "catalog")
	assert.Error(t, err)
}

func TestInventoryUpdate(t *testing.T) {
	transport := setupWorkbooks(t)

	out, err := run(t, "inventory", "update", "farmer-1-corn", "--quantity", "0", "--price", "2.75")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated farmer-1-corn")

	rows, err := transport.Read(context.Background(), "inventory", "A3:G3")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"farmer-1-corn", "Corn", "Grains", "0", "2.75", "1", "low_stock"}, rows[0])

	_, err = run(t, "inventory", "update", "farmer-1-corn")
	assert.Error(t, err, "an empty patch is refused")

	_, err = run(t, "inventory", "update", "ghost", "--quantity", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestTradesCreateAndList(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "trades", "create", "--farmer", "farmer-1", "--retailer", "retailer-1", "--quantity", "8", "--price", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded TRD000001")
	assert.Contains(t, out, "56.00")

	_, err = run(t, "trades", "create", "--farmer", "farmer-1", "--retailer", "retailer-1", "--amount", "12", "--status", "completed")
	require.NoError(t, err)

	out, err = run(t, "trades", "list", "--user", "farmer-1", "--role", "farmer")
	require.NoError(t, err)
	assert.Contains(t, out, "TRD000001")
	assert.Contains(t, out, "TRD000002")
	assert.Contains(t, out, "2 trades worth 68.00: 1 pending, 1 succeeded, 0 unsuccessful")

	out, err = run(t, "trades", "list", "--user", "retailer-9", "--role", "retailer")
	require.NoError(t, err)
	assert.Contains(t, out, "No trades found.")
}

func TestTradesCreate_Invalid(t *testing.T) {
	setupWorkbooks(t)

	_, err := run(t, "trades", "create", "--farmer", "farmer-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidRecord))

	_, err = run(t, "trades", "create", "--farmer", "f", "--retailer", "r", "--status", "shipped")
	assert.Error(t, err)

	_, err = run(t, "trades", "create", "--farmer", "f", "--retailer", "r", "--price", "cheap")
	assert.Error(t, err)
}

func TestProfileCommands(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "profile", "show", "farmer-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Karim")
	assert.Contains(t, out, "Gazipur, Dhaka")

	out, err = run(t, "profile", "show", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile for ghost.")

	out, err = run(t, "profile", "update", "retailer-1", "--contact", "+8801", "--about", "Grains")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated")
	assert.Contains(t, out, "+8801")
}

func TestDirectory(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "directory", "--role", "retailer", "--division", "khulna")
	require.NoError(t, err)
	assert.Contains(t, out, "Rahim")
	assert.NotContains(t, out, "Karim")

	_, err = run(t, "directory")
	assert.Error(t, err)
}

func TestProductsList(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "products", "list", "--user", "farmer-1")
	require.NoError(t, err)
	assert.Contains(t, out, "5.50")

	_, err = run(t, "products", "list", "--user", "farmer-1", "--for", "farmer")
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	setupWorkbooks(t)

	out, err := run(t, "dashboard", "--user", "farmer-1", "--role", "farmer")
	require.NoError(t, err)
	assert.Contains(t, out, "Karim")
	assert.Contains(t, out, "Inventory: 2 items worth 56.00, 0 low on stock")
	assert.Contains(t, out, "Products: 1")

	_, err = run(t, "dashboard", "--user", "farmer-1")
	assert.Error(t, err)
}

func TestMissingCredentials(t *testing.T) {
	setupWorkbooks(t)
	t.Setenv("AGROTRADE_WORKBOOK_DIR", "")

	_, err := run(t, "inventory", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}

func TestTransportFailure(t *testing.T) {
	setupWorkbooks(t)

	mock := sheets.NewMockTransport()
	mock.SetReadError(&common.TransportError{Op: "read", Status: 403, Message: "forbidden"})
	original := newTransport
	newTransport = func(context.Context, sheets.Config, *slog.Logger) (sheets.Transport, error) {
		return mock, nil
	}
	t.Cleanup(func() { newTransport = original })

	_, err := run(t, "inventory", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTransport))
}

func TestUsageErrors(t *testing.T) {
	setupWorkbooks(t)

	_, err := run(t, "dashboard", "--role", "farmer")
	require.Error(t, err)
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "--user is required", userErr.UserMessage)
	assert.Contains(t, errorMessage(err), "--user is required")

	_, err = run(t, "inventory", "update", "farmer-1-rice", "--price", "ten")
	require.Error(t, err)
	assert.Equal(t, `invalid --price "ten"`, stripUserMessage(t, err))

	plain := errors.New("boom")
	assert.Contains(t, errorMessage(plain), "boom")
}

func stripUserMessage(t *testing.T, err error) string {
	t.Helper()
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	return userErr.UserMessage
}
