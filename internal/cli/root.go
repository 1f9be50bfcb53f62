// Package cli wires the cobra command tree over the core services. Every
// command loads the JSON collections fresh, runs one operation and exits;
// the stores persist on each mutation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ljmonteiro/backoffice/internal/core/services"
	"github.com/ljmonteiro/backoffice/internal/logging"
	"github.com/ljmonteiro/backoffice/internal/platform/config"
	"github.com/ljmonteiro/backoffice/internal/repositories/jsonstore"
)

var (
	flagDataDir string
	flagActor   string
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back-office ledger, inventory and sales management",
	Long: `backoffice manages accounts payable and receivable, cash-flow
reconstruction, inventory and sales orders over flat JSON files.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the JSON collections (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "username recorded on mutations")
}

// app holds the wired services for one command invocation.
type app struct {
	cfg       *config.Config
	ledger    *services.LedgerService
	reporting *services.ReportingService
	cashflow  *services.CashFlowService
	users     *services.UserService
	inventory *services.InventoryService
	sales     *services.SalesService
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	ledgerStore := jsonstore.NewLedgerStore(
		cfg.PayablesPath(), cfg.ReceivablesPath(), cfg.CategoriesPath(),
		logging.WithComponent("ledger_store"))
	userStore := jsonstore.NewUserStore(cfg.UsersPath(), logging.WithComponent("user_store"))
	inventoryStore := jsonstore.NewInventoryStore(
		cfg.ProductsPath(), cfg.MovementsPath(),
		logging.WithComponent("inventory_store"))
	salesStore := jsonstore.NewSalesStore(
		cfg.CustomersPath(), cfg.OrdersPath(),
		logging.WithComponent("sales_store"))

	ledger, err := services.NewLedgerService(ledgerStore, logging.WithComponent("ledger"))
	if err != nil {
		return nil, err
	}
	inventory := services.NewInventoryService(inventoryStore, logging.WithComponent("inventory"))

	return &app{
		cfg:       cfg,
		ledger:    ledger,
		reporting: services.NewReportingService(ledgerStore, logging.WithComponent("reporting")),
		cashflow:  services.NewCashFlowService(ledgerStore, logging.WithComponent("cashflow")),
		users:     services.NewUserService(userStore, logging.WithComponent("users")),
		inventory: inventory,
		sales:     services.NewSalesService(salesStore, inventory, logging.WithComponent("sales")),
	}, nil
}

// actor returns the acting username for mutations, falling back to the OS
// user when the flag is not set.
func actor() string {
	if flagActor != "" {
		return flagActor
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
