package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ljmonteiro/backoffice/internal/render"
)

func init() {
	reportCmd.Flags().String("start", "", "period start (inclusive, optional)")
	reportCmd.Flags().String("end", "", "period end (inclusive, optional)")
	rootCmd.AddCommand(reportCmd, alertsCmd, cashflowCmd)
	cashflowCmd.AddCommand(cashflowDailyCmd, cashflowMonthlyCmd, cashflowRangeCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize obligations by due date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ref := time.Now()
		if err := a.ledger.RefreshDueStatuses(cmd.Context(), ref); err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		summary, err := a.reporting.Summarize(cmd.Context(), start, end, ref)
		if err != nil {
			return err
		}
		fmt.Print(render.Summary(summary))
		return nil
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show entries that are overdue or close to their due date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		alerts, err := a.reporting.DueAlerts(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		fmt.Print(render.Alerts(alerts))
		return nil
	},
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Reconstruct realized cash movement from settlement dates",
}

var cashflowDailyCmd = &cobra.Command{
	Use:   "daily DATE",
	Short: "Cash flow for a single day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		statement, err := a.cashflow.Daily(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(render.CashFlow(statement))
		return nil
	},
}

var cashflowMonthlyCmd = &cobra.Command{
	Use:   "monthly YEAR MONTH",
	Short: "Cash flow for a calendar month",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse year %q: %w", args[0], err)
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse month %q: %w", args[1], err)
		}
		statement, err := a.cashflow.Monthly(cmd.Context(), year, month)
		if err != nil {
			return err
		}
		fmt.Print(render.CashFlow(statement))
		return nil
	},
}

var cashflowRangeCmd = &cobra.Command{
	Use:   "range START END",
	Short: "Cash flow for an arbitrary date range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		statement, err := a.cashflow.Range(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Print(render.CashFlow(statement))
		return nil
	},
}
