// Package workflow implements the read-modify-write operations on the
// trading tables: recording trades and updating inventory and profiles.
//
// The backing sheets offer no transactions. Each workflow reads the table,
// computes the target row from what it read and overwrites that row, so two
// writers in different processes can still assign the same trade id or
// clobber each other's update. Within one process the per-table lock taken
// by WithSerializedWrites orders them.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/Veraticus/agrotrade/internal/sheets"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TradeIDPrefix starts every generated trade id.
const TradeIDPrefix = "TRD"

// Writer runs the write workflows.
type Writer struct {
	tables    *sheets.Tables
	logger    *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
	locks     map[string]*sync.Mutex
	serialize bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithSerializedWrites holds a per-table lock across each read-modify-write.
// It is on by default.
func WithSerializedWrites(enabled bool) Option {
	return func(w *Writer) {
		w.serialize = enabled
	}
}

// WithClock replaces the clock used for default trade dates.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a Writer over tables.
func NewWriter(tables *sheets.Tables, opts ...Option) *Writer {
	w := &Writer{
		tables:    tables,
		logger:    slog.Default(),
		validate:  newValidator(),
		now:       time.Now,
		serialize: true,
		locks: map[string]*sync.Mutex{
			tables.Inventory.Name:    {},
			tables.TradeHistory.Name: {},
			tables.Profiles.Name:     {},
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NextTradeID is the id assigned to a trade appended to a table that holds
// count trades.
func NextTradeID(count int) string {
	return fmt.Sprintf("%s%06d", TradeIDPrefix, count+1)
}

// CreateTrade appends a trade. Its id is derived from the number of rows
// read just before the write. An unset date defaults to now and an unset
// status to pending.
func (w *Writer) CreateTrade(ctx context.Context, in model.NewTrade) (model.Trade, error) {
	table := w.tables.TradeHistory
	logger := w.logger.With("op_id", uuid.NewString(), "workflow", "create_trade")

	if in.Date.IsZero() {
		in.Date = w.now().UTC()
	}
	if in.Status == "" {
		in.Status = model.TradePending
	}
	if err := w.validate.Struct(in); err != nil {
		return model.Trade{}, &common.ValidationError{Table: table.Name, Key: "new trade", Err: err}
	}

	unlock := w.lock(table)
	defer unlock()

	records, err := table.Records(ctx)
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to read trade history: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return model.Trade{}, err
	}

	index := len(records)
	trade := in.Trade(NextTradeID(index))
	if _, ok := table.Schema.Column(sheets.FieldQuantity); !ok && trade.StoredAmount == nil {
		// Without quantity and price columns the amount is the only money cell.
		amount := trade.Amount()
		trade.StoredAmount = &amount
	}

	if err := table.WriteRecord(ctx, index, sheets.EncodeTrade(trade)); err != nil {
		return model.Trade{}, fmt.Errorf("failed to write trade %s: %w", trade.TradeID, err)
	}

	logger.Info("Recorded trade",
		"trade_id", trade.TradeID,
		"farmer_uid", trade.FarmerUID,
		"retailer_uid", trade.RetailerUID,
		"amount", trade.Amount().String(),
		"anchor", table.RowAnchor(index))
	return trade, nil
}

// UpdateInventory merges patch into the first inventory line with id and
// overwrites that single row.
func (w *Writer) UpdateInventory(ctx context.Context, id string, patch model.InventoryPatch) (model.InventoryItem, error) {
	table := w.tables.Inventory
	logger := w.logger.With("op_id", uuid.NewString(), "workflow", "update_inventory")

	unlock := w.lock(table)
	defer unlock()

	index, rec, err := w.locate(ctx, table, sheets.FieldID, id)
	if err != nil {
		return model.InventoryItem{}, err
	}

	item, err := sheets.DecodeInventory(rec)
	if err != nil {
		return model.InventoryItem{}, sheets.Locate(err, table.Name, index+1)
	}

	merged := patch.Apply(item)
	if err := w.validate.Struct(merged); err != nil {
		return model.InventoryItem{}, &common.ValidationError{Table: table.Name, Key: id, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return model.InventoryItem{}, err
	}

	if err := table.WriteRecord(ctx, index, sheets.EncodeInventory(merged)); err != nil {
		return model.InventoryItem{}, fmt.Errorf("failed to write inventory item %s: %w", id, err)
	}

	logger.Info("Updated inventory item",
		"id", id,
		"quantity", merged.Quantity,
		"status", merged.Status(),
		"anchor", table.RowAnchor(index))
	return merged, nil
}

// UpdateProfile merges patch into the first profile with uid and overwrites
// that single row.
func (w *Writer) UpdateProfile(ctx context.Context, uid string, patch model.ProfilePatch) (model.Profile, error) {
	table := w.tables.Profiles
	logger := w.logger.With("op_id", uuid.NewString(), "workflow", "update_profile")

	unlock := w.lock(table)
	defer unlock()

	index, rec, err := w.locate(ctx, table, sheets.FieldUID, uid)
	if err != nil {
		return model.Profile{}, err
	}

	profile, err := sheets.DecodeProfile(rec)
	if err != nil {
		return model.Profile{}, sheets.Locate(err, table.Name, index+1)
	}

	merged := patch.Apply(profile)
	if err := w.validate.Struct(merged); err != nil {
		return model.Profile{}, &common.ValidationError{Table: table.Name, Key: uid, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return model.Profile{}, err
	}

	if err := table.WriteRecord(ctx, index, sheets.EncodeProfile(merged)); err != nil {
		return model.Profile{}, fmt.Errorf("failed to write profile %s: %w", uid, err)
	}

	logger.Info("Updated profile", "uid", uid, "anchor", table.RowAnchor(index))
	return merged, nil
}

// locate reads table and returns the first record whose field equals key,
// with its index. The index is only valid against the rows just read.
func (w *Writer) locate(ctx context.Context, table *sheets.Table, field, key string) (int, grid.Record, error) {
	if strings.TrimSpace(key) == "" {
		// Blank rows are kept as empty records; an empty key would match them.
		return 0, nil, &common.NotFoundError{Table: table.Name, Key: key}
	}
	records, err := table.Records(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read %s: %w", table.Name, err)
	}
	for i, rec := range records {
		if rec.Text(field) == key {
			return i, rec, nil
		}
	}
	return 0, nil, &common.NotFoundError{Table: table.Name, Key: key}
}

func (w *Writer) lock(table *sheets.Table) func() {
	if !w.serialize {
		return func() {}
	}
	mu, ok := w.locks[table.Name]
	if !ok {
		return func() {}
	}
	mu.Lock()
	return mu.Unlock
}
