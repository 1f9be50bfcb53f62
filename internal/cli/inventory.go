package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/dto"
	"github.com/ljmonteiro/backoffice/internal/render"
)

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(
		productAddCmd, productListCmd, productSearchCmd, productRemoveCmd,
		stockInCmd, stockOutCmd, movementsCmd, lowStockCmd, stockReportCmd,
	)
	productAddCmd.Flags().Int("min-stock", 0, "minimum stock level before a low-stock alert")
	movementsCmd.Flags().Int("limit", 20, "number of movements to show, newest first")
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage products and stock movements",
}

var productAddCmd = &cobra.Command{
	Use:   "add NAME CATEGORY PRICE",
	Short: "Register a new product with zero stock",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("parse price %q: %w", args[2], err)
		}
		minStock, _ := cmd.Flags().GetInt("min-stock")
		product, err := a.inventory.RegisterProduct(cmd.Context(), dto.RegisterProductRequest{
			Name:         args[0],
			Category:     args[1],
			Price:        price,
			MinimumStock: minStock,
			Actor:        actor(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s registered: %s at %s\n", product.Code, product.Name, render.FormatBRL(product.Price))
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		products, err := a.inventory.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		printProducts(products)
		return nil
	},
}

var productSearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search active products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		products, err := a.inventory.SearchProducts(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printProducts(products)
		return nil
	},
}

var productRemoveCmd = &cobra.Command{
	Use:   "remove CODE",
	Short: "Soft-delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.inventory.DeactivateProduct(cmd.Context(), args[0], actor()); err != nil {
			return err
		}
		fmt.Printf("%s removed\n", args[0])
		return nil
	},
}

var stockInCmd = &cobra.Command{
	Use:   "in CODE QUANTITY",
	Short: "Record an inward stock movement",
	Args:  cobra.ExactArgs(2),
	RunE:  runMovement(domain.MovementIn),
}

var stockOutCmd = &cobra.Command{
	Use:   "out CODE QUANTITY",
	Short: "Record an outward stock movement",
	Args:  cobra.ExactArgs(2),
	RunE:  runMovement(domain.MovementOut),
}

func runMovement(direction domain.MovementDirection) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse quantity %q: %w", args[1], err)
		}
		movement, err := a.inventory.RecordMovement(cmd.Context(), dto.StockMovementRequest{
			ProductCode: args[0],
			Direction:   direction,
			Quantity:    quantity,
			Actor:       actor(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s %d units, stock %d -> %d\n",
			movement.ProductCode, movement.Direction, movement.Quantity,
			movement.StockBefore, movement.StockAfter)
		return nil
	}
}

var movementsCmd = &cobra.Command{
	Use:   "movements",
	Short: "Show recent stock movements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		movements, err := a.inventory.RecentMovements(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(movements) == 0 {
			fmt.Println("no movements recorded")
			return nil
		}
		for _, m := range movements {
			fmt.Printf("%-19s %-8s %-3s %5d units %-25s by %s\n",
				m.RecordedAt, m.ProductCode, m.Direction, m.Quantity,
				render.Truncate(m.ProductName, 25), m.Actor)
		}
		return nil
	},
}

var lowStockCmd = &cobra.Command{
	Use:   "low-stock",
	Short: "List products at or below their minimum stock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		products, err := a.inventory.LowStock(cmd.Context())
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("no products below minimum stock")
			return nil
		}
		printProducts(products)
		return nil
	},
}

var stockReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the inventory position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		report, err := a.inventory.StockReport(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("products:    %d\n", report.ProductCount)
		fmt.Printf("total units: %d\n", report.TotalUnits)
		fmt.Printf("total value: %s\n", render.FormatBRL(report.TotalValue))
		fmt.Printf("low stock:   %d\n", len(report.LowStock))
		for _, p := range report.LowStock {
			fmt.Printf("   %-8s %-25s %d units (minimum %d)\n",
				p.Code, render.Truncate(p.Name, 25), p.Quantity, p.MinimumStock)
		}
		return nil
	},
}

func printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println("no products found")
		return
	}
	for _, p := range products {
		fmt.Printf("%-8s %-25s %-15s %14s %5d units\n",
			p.Code, render.Truncate(p.Name, 25), render.Truncate(p.Category, 15),
			render.FormatBRL(p.Price), p.Quantity)
	}
}
