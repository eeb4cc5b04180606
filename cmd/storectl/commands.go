package main

import (
	"errors"
	"fmt"

	"github.com/safar/solestride/internal/describe"
	"github.com/safar/solestride/internal/models"
	"github.com/safar/solestride/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) seedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog and reviews into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if reset {
				for _, key := range []string{models.KeyProducts, models.KeyReviews} {
					if err := a.blobs.Remove(ctx, key); err != nil {
						return fmt.Errorf("reset %s: %w", key, err)
					}
				}
			}

			sf, err := a.storefront(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products, %d orders\n", len(sf.Products()), len(sf.Orders()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace the catalog and reviews with the sample data")
	return cmd
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect the catalog",
	}

	var column, dir string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.storefront(cmd.Context())
			if err != nil {
				return err
			}
			products := store.SortProducts(sf.Products(), column, store.SortDirection(dir))

			return a.render(cmd.OutOrStdout(), products, func(t *table) {
				t.header("ID", "TITLE", "PRICE", "STOCK", "SIZES")
				for _, p := range products {
					t.row(p.ID, p.Title, p.Price.StringFixed(2), p.StockQuantity, p.AvailableSizes)
				}
			})
		},
	}
	list.Flags().StringVar(&column, "sort", "", "Sort column: id, title, price, stockQuantity or dateAdded")
	list.Flags().StringVar(&dir, "dir", string(store.SortAsc), "Sort direction: asc or desc")

	cmd.AddCommand(list)
	return cmd
}

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and progress orders",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.storefront(cmd.Context())
			if err != nil {
				return err
			}

			var orders []models.Order
			switch status {
			case "all":
				orders = sf.Orders()
			case "pending":
				orders = sf.PendingOrders()
			case "completed":
				orders = sf.CompletedOrders()
			default:
				return fmt.Errorf("unknown status filter %q", status)
			}
			return a.renderOrders(cmd, orders)
		},
	}
	list.Flags().StringVar(&status, "status", "all", "Filter: all, pending or completed")

	next := &cobra.Command{
		Use:   "next",
		Short: "Show the oldest pending order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.storefront(cmd.Context())
			if err != nil {
				return err
			}
			order, ok := sf.NextPendingOrder()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending orders")
				return nil
			}
			return a.renderOrders(cmd, []models.Order{order})
		},
	}

	setStatus := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.storefront(cmd.Context())
			if err != nil {
				return err
			}
			order, err := sf.UpdateOrderStatus(cmd.Context(), args[0], models.OrderStatus(args[1]))
			if errors.Is(err, store.ErrInvalidStatus) {
				return fmt.Errorf("%w (want one of %v)", err, models.OrderStatuses)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s marked as %s\n", order.ID, order.Status)
			return nil
		},
	}

	cmd.AddCommand(list, next, setStatus)
	return cmd
}

func (a *app) renderOrders(cmd *cobra.Command, orders []models.Order) error {
	return a.render(cmd.OutOrStdout(), orders, func(t *table) {
		t.header("ID", "DATE", "CUSTOMER", "MOBILE", "ITEMS", "TOTAL", "STATUS")
		for _, o := range orders {
			units := 0
			for _, item := range o.Items {
				units += item.Quantity
			}
			t.row(o.ID, o.OrderDate.Format("2006-01-02 15:04"), o.CustomerInfo.Name, o.CustomerInfo.Mobile,
				units, o.Total.StringFixed(2), o.Status)
		}
	})
}

func (a *app) salesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "Show revenue and top sellers",
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.storefront(cmd.Context())
			if err != nil {
				return err
			}
			summary := sf.SalesSummary()

			return a.render(cmd.OutOrStdout(), summary, func(t *table) {
				t.row("Total revenue", summary.TotalRevenue.StringFixed(2))
				t.row("Total orders", summary.TotalOrders)
				for i, s := range summary.TopSellers {
					t.row(fmt.Sprintf("#%d", i+1), fmt.Sprintf("%s (%d sold)", s.Product.Title, s.QuantitySold))
				}
			})
		},
	}
}

func (a *app) describeCmd() *cobra.Command {
	var (
		title string
		price string
		sizes []string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Draft a product description with Gemini",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("parse price: %w", err)
			}

			gen, err := describe.New(cmd.Context(), a.cfg.GenAI, a.logger.Named("describe"))
			if err != nil {
				return err
			}
			text := gen.Generate(cmd.Context(), describe.Draft{
				Title: title,
				Price: amount,
				Sizes: models.NormalizeSizes(sizes),
			})
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Product title (required)")
	cmd.Flags().StringVar(&price, "price", "0", "Product price")
	cmd.Flags().StringSliceVar(&sizes, "size", nil, "Available size, repeatable")
	cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start the shared admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.auth().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("invalid username or password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the shared admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth().Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
