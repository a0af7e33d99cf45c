// Package config assembles the application configuration from viper and
// the environment.
package config

import (
	"os"
	"strings"

	"github.com/Veraticus/agrotrade/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the sheets gateway configuration. Precedence:
// 1. Viper configuration (config file or AGROTRADE_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*, *_SHEET_ID)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	return loadSheetsConfig(viper.GetViper())
}

func loadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	config.APIKey = pick(v.GetString("sheets.api_key"), "GOOGLE_SHEETS_API_KEY")
	config.ClientID = pick(v.GetString("sheets.client_id"), "GOOGLE_SHEETS_CLIENT_ID")
	config.ClientSecret = pick(v.GetString("sheets.client_secret"), "GOOGLE_SHEETS_CLIENT_SECRET")
	config.RefreshToken = pick(v.GetString("sheets.refresh_token"), "GOOGLE_SHEETS_REFRESH_TOKEN")
	config.ServiceAccountPath = ExpandPath(pick(v.GetString("sheets.service_account_path"), "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	config.WorkbookDir = ExpandPath(pick(v.GetString("sheets.workbook_dir"), "AGROTRADE_WORKBOOK_DIR"))

	config.Sheets = sheets.SheetIDs{
		Inventory:    pick(v.GetString("sheets.ids.inventory"), "INVENTORY_SHEET_ID"),
		Products:     pick(v.GetString("sheets.ids.products"), "PRODUCTS_SHEET_ID"),
		TradeHistory: pick(v.GetString("sheets.ids.trade_history"), "TRADE_HISTORY_SHEET_ID"),
		Profiles:     pick(v.GetString("sheets.ids.profiles"), "PROFILES_SHEET_ID"),
	}

	if s := pick(v.GetString("sheets.schema"), "AGROTRADE_SCHEMA"); s != "" {
		config.Schema = sheets.Variant(strings.ToLower(s))
	}
	if s := v.GetString("sheets.tab"); s != "" {
		config.Tab = s
	}
	if s := v.GetString("sheets.value_input_option"); s != "" {
		config.ValueInputOption = sheets.ValueInputOption(strings.ToUpper(s))
	}
	if v.IsSet("sheets.timeout") {
		config.Timeout = v.GetDuration("sheets.timeout")
	}
	if v.IsSet("sheets.retry_attempts") {
		config.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.retry_delay") {
		config.RetryDelay = v.GetDuration("sheets.retry_delay")
	}
	if v.IsSet("sheets.serialize_writes") {
		config.SerializeWrites = v.GetBool("sheets.serialize_writes")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// pick returns the configured value, falling back to the environment
// variable env.
func pick(configured, env string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(env)
}
