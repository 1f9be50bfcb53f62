package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/dto"
	"github.com/ljmonteiro/backoffice/internal/render"
)

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.AddCommand(
		customerAddCmd, customerListCmd, customerSearchCmd,
		orderCreateCmd, orderListCmd, orderStatusCmd, receiptCmd, salesReportCmd,
	)
	customerAddCmd.Flags().String("phone", "", "customer phone")
	customerAddCmd.Flags().String("address", "", "customer address")
	_ = customerAddCmd.MarkFlagRequired("phone")
	orderCreateCmd.Flags().String("notes", "", "free-form notes")
	orderListCmd.Flags().String("status", "", "filter by order status")
	salesReportCmd.Flags().String("start", "", "period start (inclusive, optional)")
	salesReportCmd.Flags().String("end", "", "period end (inclusive, optional)")
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Manage customers and sales orders",
}

var customerAddCmd = &cobra.Command{
	Use:   "add-customer NAME EMAIL",
	Short: "Register a new customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		phone, _ := cmd.Flags().GetString("phone")
		address, _ := cmd.Flags().GetString("address")
		customer, err := a.sales.RegisterCustomer(cmd.Context(), dto.RegisterCustomerRequest{
			Name:    args[0],
			Email:   args[1],
			Phone:   phone,
			Address: address,
			Actor:   actor(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s registered: %s <%s>\n", customer.Code, customer.Name, customer.Email)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "customers",
	Short: "List active customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		customers, err := a.sales.ListCustomers(cmd.Context())
		if err != nil {
			return err
		}
		printCustomers(customers)
		return nil
	},
}

var customerSearchCmd = &cobra.Command{
	Use:   "search-customer TERM",
	Short: "Search active customers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		customers, err := a.sales.SearchCustomers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printCustomers(customers)
		return nil
	},
}

var orderCreateCmd = &cobra.Command{
	Use:   "order CUSTOMER_CODE PRODUCT:QTY [PRODUCT:QTY...]",
	Short: "Create a sales order, reserving stock",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		lines := make([]dto.OrderLineRequest, 0, len(args)-1)
		for _, arg := range args[1:] {
			code, qty, ok := strings.Cut(arg, ":")
			if !ok {
				return fmt.Errorf("parse line %q: expected PRODUCT:QTY", arg)
			}
			quantity, err := strconv.Atoi(qty)
			if err != nil {
				return fmt.Errorf("parse quantity in %q: %w", arg, err)
			}
			lines = append(lines, dto.OrderLineRequest{ProductCode: code, Quantity: quantity})
		}
		notes, _ := cmd.Flags().GetString("notes")
		order, err := a.sales.CreateOrder(cmd.Context(), dto.CreateOrderRequest{
			CustomerCode: args[0],
			Lines:        lines,
			Notes:        notes,
			Actor:        actor(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s created for %s: %d lines, total %s\n",
			order.Code, order.CustomerName, len(order.Lines), render.FormatBRL(order.Total))
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "orders",
	Short: "List sales orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		var status *domain.OrderStatus
		if v, _ := cmd.Flags().GetString("status"); v != "" {
			s := domain.OrderStatus(v)
			if !domain.ValidOrderStatus(s) {
				return fmt.Errorf("unknown order status %q", v)
			}
			status = &s
		}
		orders, err := a.sales.ListOrders(cmd.Context(), status)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("no orders found")
			return nil
		}
		for _, o := range orders {
			fmt.Printf("%-8s %-25s %14s %-10s %s\n",
				o.Code, render.Truncate(o.CustomerName, 25), render.FormatBRL(o.Total),
				o.Status, o.CreatedAt)
		}
		return nil
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status CODE STATUS",
	Short: "Move an order to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		order, err := a.sales.UpdateOrderStatus(cmd.Context(), args[0], domain.OrderStatus(args[1]), actor())
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", order.Code, order.Status)
		return nil
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt CODE",
	Short: "Print a text receipt for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		orders, err := a.sales.SearchOrders(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var order *domain.Order
		for i := range orders {
			if orders[i].Code == args[0] {
				order = &orders[i]
				break
			}
		}
		if order == nil {
			return fmt.Errorf("order %s not found", args[0])
		}
		customers, err := a.sales.SearchCustomers(cmd.Context(), order.CustomerCode)
		if err != nil {
			return err
		}
		var customer *domain.Customer
		for i := range customers {
			if customers[i].Code == order.CustomerCode {
				customer = &customers[i]
				break
			}
		}
		if customer == nil {
			return fmt.Errorf("customer %s not found", order.CustomerCode)
		}
		fmt.Print(render.Receipt(order, customer))
		return nil
	},
}

var salesReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize sales over a period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		report, err := a.sales.SalesReport(cmd.Context(), start, end)
		if err != nil {
			return err
		}
		fmt.Printf("orders:      %d\n", report.OrderCount)
		fmt.Printf("total sales: %s\n", render.FormatBRL(report.TotalSales))
		for status, count := range report.CountByStatus {
			fmt.Printf("   %-10s %d\n", status, count)
		}
		if len(report.SalesByCustomer) > 0 {
			fmt.Println("by customer:")
			for name, total := range report.SalesByCustomer {
				fmt.Printf("   %-25s %14s\n", render.Truncate(name, 25), render.FormatBRL(total))
			}
		}
		if len(report.UnitsByProduct) > 0 {
			fmt.Println("units by product:")
			for name, units := range report.UnitsByProduct {
				fmt.Printf("   %-25s %5d\n", render.Truncate(name, 25), units)
			}
		}
		return nil
	},
}

func printCustomers(customers []domain.Customer) {
	if len(customers) == 0 {
		fmt.Println("no customers found")
		return
	}
	for _, c := range customers {
		fmt.Printf("%-8s %-25s %-30s %s\n",
			c.Code, render.Truncate(c.Name, 25), render.Truncate(c.Email, 30), c.Phone)
	}
}
