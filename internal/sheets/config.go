// Package sheets is the table gateway over the trading spreadsheets: one
// Table per logical table, each reading and writing through a Transport.
package sheets

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/agrotrade/internal/common"
)

// Variant selects which of the two sheet layouts the tables follow.
type Variant string

// Sheet layout variants.
const (
	// VariantLegacy is the positional layout: header-less A2 ranges and
	// camel-case fields such as listPrice and tradeId.
	VariantLegacy Variant = "legacy"
	// VariantTyped is the header-driven layout: the first row of the tab names
	// the columns (price_per_unit, trade_id, ...).
	VariantTyped Variant = "typed"
)

// SheetIDs are the spreadsheet identifiers of the four tables.
type SheetIDs struct {
	Inventory    string
	Products     string
	TradeHistory string
	Profiles     string
}

// Config holds the configuration for the sheets gateway.
type Config struct {
	Sheets             SheetIDs
	APIKey             string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	WorkbookDir        string
	Tab                string
	Schema             Variant
	ValueInputOption   ValueInputOption
	Timeout            time.Duration
	RetryAttempts      int
	RetryDelay         time.Duration
	SerializeWrites    bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Schema:           VariantLegacy,
		Tab:              "Sheet1",
		ValueInputOption: UserEntered,
		Timeout:          15 * time.Second,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		SerializeWrites:  true,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")
	c.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	c.WorkbookDir = os.Getenv("AGROTRADE_WORKBOOK_DIR")

	c.Sheets = SheetIDs{
		Inventory:    os.Getenv("INVENTORY_SHEET_ID"),
		Products:     os.Getenv("PRODUCTS_SHEET_ID"),
		TradeHistory: os.Getenv("TRADE_HISTORY_SHEET_ID"),
		Profiles:     os.Getenv("PROFILES_SHEET_ID"),
	}

	if v := os.Getenv("AGROTRADE_SCHEMA"); v != "" {
		c.Schema = Variant(v)
	}

	if c.authMethods() == 0 {
		return fmt.Errorf("%w: provide an API key, a service account path, OAuth2 credentials or a workbook directory", common.ErrMissingConfig)
	}

	return nil
}

func (c *Config) authMethods() int {
	n := 0
	if c.APIKey != "" {
		n++
	}
	if c.ServiceAccountPath != "" {
		n++
	}
	if c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "" {
		n++
	}
	if c.WorkbookDir != "" {
		n++
	}
	return n
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.authMethods() {
	case 0:
		return fmt.Errorf("%w: no authentication method configured", common.ErrInvalidConfig)
	case 1:
	default:
		return fmt.Errorf("%w: multiple authentication methods configured; use exactly one of API key, service account, OAuth2 or workbook directory", common.ErrInvalidConfig)
	}

	missing := []string{}
	for name, id := range map[string]string{
		"inventory":     c.Sheets.Inventory,
		"products":      c.Sheets.Products,
		"trade history": c.Sheets.TradeHistory,
		"profiles":      c.Sheets.Profiles,
	} {
		if id == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: sheet id missing for %s", common.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if c.Schema != VariantLegacy && c.Schema != VariantTyped {
		return fmt.Errorf("%w: unknown schema variant %q", common.ErrInvalidConfig, c.Schema)
	}

	if c.Schema == VariantTyped && c.Tab == "" {
		return fmt.Errorf("%w: typed schema needs a tab name", common.ErrInvalidConfig)
	}

	if c.ValueInputOption != Raw && c.ValueInputOption != UserEntered {
		return fmt.Errorf("%w: value input option must be RAW or USER_ENTERED", common.ErrInvalidConfig)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}

// RetryOptions is the read retry policy callers may apply.
func (c *Config) RetryOptions() common.RetryOptions {
	return common.RetryOptions{
		MaxAttempts:  c.RetryAttempts,
		InitialDelay: c.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}
