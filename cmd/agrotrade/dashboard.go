package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/query"
	"github.com/Veraticus/agrotrade/internal/stats"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var userID, roleName string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a user's dashboard",
		Long: `Show a user's profile, inventory, products and trades with headline totals.
The four tables are read concurrently; if any read fails nothing is shown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return common.NewUserError("--user is required", nil)
			}
			role, err := requireRole(roleName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			dash, err := a.query.LoadDashboard(ctx, userID, role)
			if err != nil {
				return err
			}
			return renderDashboard(cmd.OutOrStdout(), dash)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&roleName, "role", "", "the user's role (farmer or retailer)")

	return cmd
}

func renderDashboard(out io.Writer, dash query.Dashboard) error {
	if dash.HasProfile {
		fmt.Fprintln(out, renderProfile(dash.Profile))
	} else {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No profile for %s.", dash.UserID)))
	}

	overview := stats.Summarize(dash.Inventory, dash.Products, dash.Trades)
	fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" Overview", fmt.Sprintf(
		"Inventory: %d items worth %s, %d low on stock\nProducts: %d\nTrades: %d worth %s, %d pending",
		overview.Inventory.TotalItems,
		money(overview.Inventory.TotalValue),
		overview.Inventory.LowStock,
		overview.Products,
		overview.Trades.Count,
		money(overview.Trades.TotalAmount),
		overview.Trades.Pending,
	)))

	if err := renderInventory(out, dash.Inventory); err != nil {
		return err
	}
	if err := renderProducts(out, dash.Products); err != nil {
		return err
	}
	return renderTrades(out, dash.Trades)
}
