package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func quantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func stockStatus(item model.InventoryItem) string {
	if item.Status() == model.LowStock {
		return cli.WarningStyle.Render(string(model.LowStock))
	}
	return cli.SuccessStyle.Render(string(model.InStock))
}

func tradeStatus(s model.TradeStatus) string {
	switch {
	case s == model.TradePending:
		return cli.WarningStyle.Render(string(s))
	case s.Succeeded():
		return cli.SuccessStyle.Render(string(s))
	case s.Unsuccessful():
		return cli.ErrorStyle.Render(string(s))
	}
	return cli.SubtleStyle.Render("-")
}

// requireRole parses a --role flag that must name a role.
func requireRole(s string) (model.Role, error) {
	role, err := model.ParseRole(s)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", common.NewUserError("--role is required (farmer or retailer)", nil)
	}
	return role, nil
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("invalid --%s %q", name, value), err)
	}
	return d, nil
}
