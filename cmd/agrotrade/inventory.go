package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/Veraticus/agrotrade/internal/query"
	"github.com/Veraticus/agrotrade/internal/stats"
	"github.com/spf13/cobra"
)

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show and update inventory",
	}

	cmd.AddCommand(inventoryListCmd())
	cmd.AddCommand(inventoryCatalogCmd())
	cmd.AddCommand(inventoryUpdateCmd())

	return cmd
}

func inventoryListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory lines",
		Long: `List inventory lines with their derived stock status.

With --user only the lines owned by that user are shown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			var items []model.InventoryItem
			if userID != "" {
				items, err = a.query.FetchUserInventory(ctx, userID)
			} else {
				items, err = a.query.FetchInventory(ctx)
			}
			if err != nil {
				return err
			}

			return renderInventory(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "only show lines owned by this user id")

	return cmd
}

func renderInventory(out io.Writer, items []model.InventoryItem) error {
	if len(items) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No inventory found."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.HarvestIcon, "Inventory"))

	table, err := cli.NewTable(out, "ID", "Product", "Category", "Quantity", "Min", "Price", "Value", "Status")
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := table.Row(
			item.ID,
			item.ProductName,
			item.Category,
			quantity(item.Quantity),
			quantity(item.MinStockLevel),
			money(item.ListPrice),
			money(item.Value()),
			stockStatus(item),
		); err != nil {
			return err
		}
	}
	if err := table.Flush(); err != nil {
		return err
	}

	summary := stats.Inventory(items)
	fmt.Fprintf(out, "\n%d items, total value %s, %d low on stock\n",
		summary.TotalItems, money(summary.TotalValue), summary.LowStock)
	return nil
}

func inventoryCatalogCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List inventory lines next to their catalogue products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return common.NewUserError("--user is required", nil)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			lines, err := a.query.FetchInventoryCatalog(ctx, userID)
			if err != nil {
				return err
			}
			return renderCatalog(cmd.OutOrStdout(), lines)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner user id")

	return cmd
}

func renderCatalog(out io.Writer, lines []query.CatalogLine) error {
	if len(lines) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No inventory found."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.CrateIcon, "Inventory catalogue"))

	table, err := cli.NewTable(out, "ID", "Product", "Quantity", "Price", "Catalogue", "Base price", "Description")
	if err != nil {
		return err
	}
	for _, line := range lines {
		catalogue, base, description := cli.SubtleStyle.Render("unlisted"), "", ""
		if line.Found {
			catalogue = line.Product.Name
			base = money(line.Product.Price)
			description = line.Product.Description
		}
		if err := table.Row(
			line.Item.ID,
			line.Item.ProductName,
			quantity(line.Item.Quantity),
			money(line.Item.ListPrice),
			catalogue,
			base,
			description,
		); err != nil {
			return err
		}
	}
	return table.Flush()
}

func inventoryUpdateCmd() *cobra.Command {
	var (
		name, category, unit, ownerType string
		listPrice, costPrice            string
		qty, minStock                   float64
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of an inventory line",
		Long: `Update fields of the first inventory line with the given id.
Only the flags given are changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch model.InventoryPatch
			if flags.Changed("name") {
				patch.ProductName = &name
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("unit") {
				patch.Unit = &unit
			}
			if flags.Changed("quantity") {
				patch.Quantity = &qty
			}
			if flags.Changed("min-stock") {
				patch.MinStockLevel = &minStock
			}
			if flags.Changed("price") {
				d, err := parseDecimalFlag("price", listPrice)
				if err != nil {
					return err
				}
				patch.ListPrice = &d
			}
			if flags.Changed("cost") {
				d, err := parseDecimalFlag("cost", costPrice)
				if err != nil {
					return err
				}
				patch.CostPrice = &d
			}
			if flags.Changed("owner-type") {
				role, err := model.ParseRole(ownerType)
				if err != nil {
					return err
				}
				patch.OwnerType = &role
			}
			if patch.IsEmpty() {
				return common.NewUserError("nothing to update; pass at least one field flag", nil)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			item, err := a.writer.UpdateInventory(ctx, args[0], patch)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Updated %s: %s quantity %s at %s (%s)",
				item.ID, item.ProductName, quantity(item.Quantity), money(item.ListPrice), item.Status())))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measure")
	cmd.Flags().Float64Var(&qty, "quantity", 0, "quantity on hand")
	cmd.Flags().Float64Var(&minStock, "min-stock", 0, "minimum stock level")
	cmd.Flags().StringVar(&listPrice, "price", "", "list price per unit")
	cmd.Flags().StringVar(&costPrice, "cost", "", "cost price per unit")
	cmd.Flags().StringVar(&ownerType, "owner-type", "", "owner type (farmer or retailer)")

	return cmd
}
