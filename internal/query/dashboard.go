package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/agrotrade/internal/model"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything one user's dashboard shows, read in one go.
type Dashboard struct {
	Profile    model.Profile
	UserID     string
	Role       model.Role
	Inventory  []model.InventoryItem
	Products   []model.Product
	Trades     []model.Trade
	HasProfile bool
}

// LoadDashboard reads the user's profile, inventory, products and trades
// concurrently. The first failure cancels the other reads and no partial
// dashboard is returned.
func (s *Service) LoadDashboard(ctx context.Context, userID string, role model.Role) (Dashboard, error) {
	d := Dashboard{UserID: userID, Role: role}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, ok, err := s.FetchUserProfile(gctx, userID)
		if err != nil {
			return err
		}
		d.Profile, d.HasProfile = profile, ok
		return nil
	})
	g.Go(func() error {
		items, err := s.FetchUserInventory(gctx, userID)
		if err != nil {
			return err
		}
		d.Inventory = items
		return nil
	})
	g.Go(func() error {
		products, err := s.FetchUserProducts(gctx, userID)
		if err != nil {
			return err
		}
		d.Products = products
		return nil
	})
	g.Go(func() error {
		trades, err := s.FetchUserTradeHistory(gctx, userID, role)
		if err != nil {
			return err
		}
		d.Trades = trades
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard load failed", "user_id", userID, "role", role, "error", err)
		return Dashboard{}, fmt.Errorf("failed to load dashboard for %s: %w", userID, err)
	}

	s.logger.Debug("loaded dashboard",
		"user_id", userID,
		"inventory", len(d.Inventory),
		"products", len(d.Products),
		"trades", len(d.Trades))
	return d, nil
}

// CatalogLine is an inventory line next to the catalogue product it stocks.
type CatalogLine struct {
	Product model.Product
	Item    model.InventoryItem
	Found   bool
}

// FetchInventoryCatalog joins ownerID's inventory with the product catalogue.
// Lines match a product by catalogue key first and by product name, ignoring
// case, second. Lines without a product keep Found false.
func (s *Service) FetchInventoryCatalog(ctx context.Context, ownerID string) ([]CatalogLine, error) {
	var (
		items    []model.InventoryItem
		products []model.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.FetchUserInventory(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.FetchProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return JoinCatalog(items, products), nil
}

// JoinCatalog pairs each inventory line with its catalogue product. When
// several products share an id or name the first one wins.
func JoinCatalog(items []model.InventoryItem, products []model.Product) []CatalogLine {
	byID := make(map[string]model.Product, len(products))
	byName := make(map[string]model.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; p.ID != "" && !dup {
			byID[p.ID] = p
		}
		name := catalogName(p.Name)
		if _, dup := byName[name]; name != "" && !dup {
			byName[name] = p
		}
	}

	lines := make([]CatalogLine, 0, len(items))
	for _, item := range items {
		line := CatalogLine{Item: item}
		if p, ok := byID[item.CatalogKey()]; ok {
			line.Product, line.Found = p, true
		} else if p, ok := byName[catalogName(item.ProductName)]; ok {
			line.Product, line.Found = p, true
		}
		lines = append(lines, line)
	}
	return lines
}

func catalogName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
