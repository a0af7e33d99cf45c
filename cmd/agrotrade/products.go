package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/agrotrade/internal/cli"
	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show the product catalogue",
	}

	cmd.AddCommand(productsListCmd())

	return cmd
}

func productsListCmd() *cobra.Command {
	var userID, forRole string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogue products",
		Long: `List catalogue products.

--user shows the products a user owns; --for shows the products offered to
a role. Without either flag the whole catalogue is listed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID != "" && forRole != "" {
				return common.NewUserError("--user and --for cannot be combined", nil)
			}

			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}

			var products []model.Product
			switch {
			case userID != "":
				products, err = a.query.FetchUserProducts(ctx, userID)
			case forRole != "":
				role, roleErr := requireRole(forRole)
				if roleErr != nil {
					return roleErr
				}
				products, err = a.query.FetchProductsFor(ctx, role)
			default:
				products, err = a.query.FetchProducts(ctx)
			}
			if err != nil {
				return err
			}

			return renderProducts(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "only show products owned by this user id")
	cmd.Flags().StringVar(&forRole, "for", "", "only show products offered to this role (farmer or retailer)")

	return cmd
}

func renderProducts(out io.Writer, products []model.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No products found."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.CrateIcon, "Products"))

	table, err := cli.NewTable(out, "ID", "Name", "Category", "Price", "Unit", "Offered to")
	if err != nil {
		return err
	}
	for _, p := range products {
		offered := string(p.AvailableFor)
		if offered == "" {
			offered = "-"
		}
		if err := table.Row(p.ID, p.Name, p.Category, money(p.Price), p.Unit, offered); err != nil {
			return err
		}
	}
	return table.Flush()
}
