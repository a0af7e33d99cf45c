// Package query reads the trading tables and answers per-user questions
// about them. Every call reads the backing sheets afresh; nothing is cached.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/Veraticus/agrotrade/internal/sheets"
)

// Service answers read queries over the four tables.
type Service struct {
	tables       *sheets.Tables
	logger       *slog.Logger
	inventoryOwn OwnershipPredicate
	productOwn   OwnershipPredicate
	retry        *common.RetryOptions
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithInventoryOwnership replaces the predicate deciding which inventory
// lines belong to a user.
func WithInventoryOwnership(p OwnershipPredicate) Option {
	return func(s *Service) {
		s.inventoryOwn = p
	}
}

// WithProductOwnership replaces the predicate deciding which catalogue
// products belong to a user.
func WithProductOwnership(p OwnershipPredicate) Option {
	return func(s *Service) {
		s.productOwn = p
	}
}

// WithRetry retries failed table reads under opts. Reads are not retried
// by default.
func WithRetry(opts common.RetryOptions) Option {
	return func(s *Service) {
		s.retry = &opts
	}
}

// NewService creates a query service over tables. Ownership defaults follow
// the layout: id prefixes for the legacy sheets, the owner_id column for the
// typed ones.
func NewService(tables *sheets.Tables, opts ...Option) *Service {
	s := &Service{
		tables: tables,
		logger: slog.Default(),
	}
	if tables.Layout.Variant == sheets.VariantTyped {
		s.inventoryOwn = OwnerIDMatch()
		s.productOwn = OwnerIDMatch()
	} else {
		s.inventoryOwn = IDPrefix()
		s.productOwn = IDPrefix()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the gateways the service reads from.
func (s *Service) Tables() *sheets.Tables {
	return s.tables
}

// FetchInventory returns every inventory line.
func (s *Service) FetchInventory(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := fetch(ctx, s, s.tables.Inventory, sheets.DecodeInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}
	return items, nil
}

// FetchProducts returns the whole product catalogue.
func (s *Service) FetchProducts(ctx context.Context) ([]model.Product, error) {
	products, err := fetch(ctx, s, s.tables.Products, sheets.DecodeProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// FetchTradeHistory returns every recorded trade.
func (s *Service) FetchTradeHistory(ctx context.Context) ([]model.Trade, error) {
	trades, err := fetch(ctx, s, s.tables.TradeHistory, sheets.DecodeTrade)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trade history: %w", err)
	}
	return trades, nil
}

// FetchProfiles returns every user profile.
func (s *Service) FetchProfiles(ctx context.Context) ([]model.Profile, error) {
	profiles, err := fetch(ctx, s, s.tables.Profiles, sheets.DecodeProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	return profiles, nil
}

// FetchUserInventory returns the inventory lines owned by ownerID.
func (s *Service) FetchUserInventory(ctx context.Context, ownerID string) ([]model.InventoryItem, error) {
	items, err := s.FetchInventory(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, func(item model.InventoryItem) bool {
		return s.inventoryOwn(InventoryOwnership(item), ownerID)
	}), nil
}

// FetchUserProducts returns the catalogue products owned by ownerID.
func (s *Service) FetchUserProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	products, err := s.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filter(products, func(p model.Product) bool {
		return s.productOwn(ProductOwnership(p), ownerID)
	}), nil
}

// FetchProductsFor returns the catalogue products offered to role.
func (s *Service) FetchProductsFor(ctx context.Context, role model.Role) ([]model.Product, error) {
	products, err := s.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filter(products, func(p model.Product) bool {
		return p.OfferedTo(role)
	}), nil
}

// FetchUserTradeHistory returns the trades in which userID took part as role.
func (s *Service) FetchUserTradeHistory(ctx context.Context, userID string, role model.Role) ([]model.Trade, error) {
	trades, err := s.FetchTradeHistory(ctx)
	if err != nil {
		return nil, err
	}
	return filter(trades, func(t model.Trade) bool {
		return t.Involves(userID, role)
	}), nil
}

// FetchUserProfile returns the first profile with userID. The boolean is
// false when there is none.
func (s *Service) FetchUserProfile(ctx context.Context, userID string) (model.Profile, bool, error) {
	profiles, err := s.FetchProfiles(ctx)
	if err != nil {
		return model.Profile{}, false, err
	}
	for _, p := range profiles {
		if p.UID == userID {
			return p, true, nil
		}
	}
	return model.Profile{}, false, nil
}

// FetchDirectory lists the profiles of role, optionally narrowed to one
// division. Division matching ignores case.
func (s *Service) FetchDirectory(ctx context.Context, role model.Role, division string) ([]model.Profile, error) {
	profiles, err := s.FetchProfiles(ctx)
	if err != nil {
		return nil, err
	}
	division = strings.TrimSpace(division)
	return filter(profiles, func(p model.Profile) bool {
		if role != "" && p.Role != role {
			return false
		}
		return division == "" || strings.EqualFold(p.Division, division)
	}), nil
}

// fetch reads and decodes a whole table, retrying the read when configured.
func fetch[T any](ctx context.Context, s *Service, table *sheets.Table, decode func(grid.Record) (T, error)) ([]T, error) {
	var records []T
	read := func() error {
		recs, err := table.Records(ctx)
		if err != nil {
			return err
		}
		records, err = sheets.DecodeAll(table.Name, recs, decode)
		return err
	}

	var err error
	if s.retry != nil {
		err = common.WithRetry(ctx, read, *s.retry)
	} else {
		err = read()
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched table", "table", table.Name, "count", len(records))
	return records, nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
