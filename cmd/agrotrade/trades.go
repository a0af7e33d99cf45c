package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/Veraticus/agrotrade/internal/stats"
	"github.com/spf13/cobra"
)

func tradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Show and record trades",
	}

	cmd.AddCommand(tradesListCmd())
	cmd.AddCommand(tradesCreateCmd())

	return cmd
}

func tradesListCmd() *cobra.Command {
	var userID, roleName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trade history",
		Long: `List trade history. With --user and --role only the trades where the user is
the farmer (or the retailer) are shown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			var trades []model.Trade
			if userID != "" {
				role, roleErr := requireRole(roleName)
				if roleErr != nil {
					return roleErr
				}
				trades, err = a.query.FetchUserTradeHistory(ctx, userID, role)
			} else {
				trades, err = a.query.FetchTradeHistory(ctx)
			}
			if err != nil {
				return err
			}

			return renderTrades(cmd.OutOrStdout(), trades)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "only show trades of this user id")
	cmd.Flags().StringVar(&roleName, "role", "", "the user's role (farmer or retailer)")

	return cmd
}

func renderTrades(out io.Writer, trades []model.Trade) error {
	if len(trades) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No trades found."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.TradeIcon, "Trades"))

	table, err := cli.NewTable(out, "Trade", "Date", "Farmer", "Retailer", "Product", "Amount", "Status")
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := table.Row(
			t.TradeID,
			day(t.Date),
			t.FarmerUID,
			t.RetailerUID,
			t.ProductName,
			money(t.Amount()),
			tradeStatus(t.Status),
		); err != nil {
			return err
		}
	}
	if err := table.Flush(); err != nil {
		return err
	}

	summary := stats.Trades(trades)
	fmt.Fprintf(out, "\n%d trades worth %s: %d pending, %d succeeded, %d unsuccessful\n",
		summary.Count, money(summary.TotalAmount), summary.Pending, summary.Succeeded, summary.Unsuccessful)
	return nil
}

func tradesCreateCmd() *cobra.Command {
	var (
		in                                   model.NewTrade
		price, amount, status, buyerTypeName string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new trade",
		Long: `Record a new trade. The trade id is assigned from the current number of
trades; the date defaults to now and the status to pending.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if price != "" {
				d, err := parseDecimalFlag("price", price)
				if err != nil {
					return err
				}
				in.PricePerUnit = d
			}
			if amount != "" {
				d, err := parseDecimalFlag("amount", amount)
				if err != nil {
					return err
				}
				in.Amount = &d
			}
			if status != "" {
				s, err := model.ParseTradeStatus(status)
				if err != nil {
					return err
				}
				in.Status = s
			}
			if buyerTypeName != "" {
				role, err := model.ParseRole(buyerTypeName)
				if err != nil {
					return err
				}
				in.BuyerType = role
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			trade, err := a.writer.CreateTrade(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Recorded %s between %s and %s for %s (%s)",
				trade.TradeID, trade.FarmerUID, trade.RetailerUID, money(trade.Amount()), trade.Status)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.FarmerUID, "farmer", "", "farmer user id")
	flags.StringVar(&in.RetailerUID, "retailer", "", "retailer user id")
	flags.StringVar(&in.ProductName, "product", "", "product name")
	flags.Float64Var(&in.Quantity, "quantity", 0, "quantity traded")
	flags.StringVar(&price, "price", "", "price per unit")
	flags.StringVar(&amount, "amount", "", "total amount (defaults to quantity times price)")
	flags.StringVar(&in.Unit, "unit", "", "unit of measure")
	flags.StringVar(&status, "status", "", "trade status (default pending)")
	flags.StringVar(&buyerTypeName, "buyer-type", "", "buyer role (farmer or retailer)")
	flags.StringVar(&in.SellerName, "seller", "", "seller display name")
	flags.StringVar(&in.Details, "details", "", "free-form details")

	return cmd
}
