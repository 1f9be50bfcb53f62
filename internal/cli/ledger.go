package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/dto"
	"github.com/ljmonteiro/backoffice/internal/render"
)

func init() {
	rootCmd.AddCommand(newLedgerCmd(domain.KindPayable))
	rootCmd.AddCommand(newLedgerCmd(domain.KindReceivable))
	rootCmd.AddCommand(refreshCmd, searchCmd)
}

// newLedgerCmd builds the payable or receivable command group. The two share
// everything except naming and the settle verb.
func newLedgerCmd(kind domain.LedgerKind) *cobra.Command {
	name := "payable"
	counterparty := "supplier"
	settleVerb := "pay"
	if kind == domain.KindReceivable {
		name = "receivable"
		counterparty = "payer"
		settleVerb = "receive"
	}

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage accounts %s", name),
	}

	add := &cobra.Command{
		Use:   "add DESCRIPTION AMOUNT DUE_DATE",
		Short: fmt.Sprintf("Register a new %s entry", name),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parse amount %q: %w", args[1], err)
			}
			cp, _ := cmd.Flags().GetString(counterparty)
			category, _ := cmd.Flags().GetString("category")
			notes, _ := cmd.Flags().GetString("notes")

			var entry *domain.LedgerEntry
			if kind == domain.KindPayable {
				entry, err = a.ledger.RegisterPayable(cmd.Context(), dto.RegisterPayableRequest{
					Description: args[0],
					Category:    category,
					Amount:      amount,
					DueDate:     args[2],
					Supplier:    cp,
					Notes:       notes,
					Actor:       actor(),
				})
			} else {
				entry, err = a.ledger.RegisterReceivable(cmd.Context(), dto.RegisterReceivableRequest{
					Description: args[0],
					Category:    category,
					Amount:      amount,
					DueDate:     args[2],
					Payer:       cp,
					Notes:       notes,
					Actor:       actor(),
				})
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s registered: %s %s due %s\n",
				entry.ID, entry.Description, render.FormatBRL(entry.Amount), entry.DueDate)
			return nil
		},
	}
	add.Flags().String("category", "", "category code")
	add.Flags().String(counterparty, "", counterparty+" name")
	add.Flags().String("notes", "", "free-form notes")
	_ = add.MarkFlagRequired("category")
	if kind == domain.KindReceivable {
		_ = add.MarkFlagRequired(counterparty)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List active %s entries by due date", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			filter := dto.EntryFilter{}
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				status := domain.SettlementStatus(v)
				filter.Status = &status
			}
			if v, _ := cmd.Flags().GetString("category"); v != "" {
				filter.Category = &v
			}
			var entries []domain.LedgerEntry
			if kind == domain.KindPayable {
				entries, err = a.ledger.ListPayables(cmd.Context(), filter)
			} else {
				entries, err = a.ledger.ListReceivables(cmd.Context(), filter)
			}
			if err != nil {
				return err
			}
			printEntries(entries)
			return nil
		},
	}
	list.Flags().String("status", "", "filter by settlement status")
	list.Flags().String("category", "", "filter by category code")

	settle := &cobra.Command{
		Use:   settleVerb + " ID",
		Short: fmt.Sprintf("Record a settlement for a %s entry", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			req := dto.SettleRequest{ID: args[0], SettlementDate: date, Actor: actor()}
			var entry *domain.LedgerEntry
			if kind == domain.KindPayable {
				entry, err = a.ledger.RecordPayment(cmd.Context(), req)
			} else {
				entry, err = a.ledger.RecordReceipt(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s settled on %s: %s %s\n",
				entry.ID, *entry.SettledOn, entry.Description, render.FormatBRL(entry.Amount))
			return nil
		},
	}
	settle.Flags().String("date", "", "settlement date (defaults to today)")

	search := &cobra.Command{
		Use:   "search TERM",
		Short: fmt.Sprintf("Search active %s entries", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			entries, err := a.ledger.Search(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			printEntries(entries)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: fmt.Sprintf("Soft-delete a %s entry", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.ledger.Deactivate(cmd.Context(), kind, args[0], actor()); err != nil {
				return err
			}
			fmt.Printf("%s removed\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, settle, search, remove)
	return cmd
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute due statuses for all pending entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ledger.RefreshDueStatuses(cmd.Context(), time.Now()); err != nil {
			return err
		}
		fmt.Println("due statuses refreshed")
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search active entries across payables and receivables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		for _, kind := range []domain.LedgerKind{domain.KindPayable, domain.KindReceivable} {
			entries, err := a.ledger.Search(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				continue
			}
			fmt.Printf("%s:\n", kind)
			printEntries(entries)
		}
		return nil
	},
}

func printEntries(entries []domain.LedgerEntry) {
	if len(entries) == 0 {
		fmt.Println("no entries found")
		return
	}
	for _, e := range entries {
		fmt.Printf("%-8s %-25s %14s due %-12s %-10s %s\n",
			e.ID, render.Truncate(e.Description, 25), render.FormatBRL(e.Amount),
			e.DueDate, e.Status, e.DueStatus)
	}
}
