package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/backoffice/internal/core/services"
	"github.com/ljmonteiro/backoffice/internal/repositories/jsonstore"
)

// fixedNow is the wall clock used by the fixtures: a Sunday afternoon.
var fixedNow = time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func newLedgerFixture(t *testing.T) (*services.LedgerService, *jsonstore.LedgerStore) {
	t.Helper()
	store := newLedgerStore(t, t.TempDir())
	svc, err := services.NewLedgerService(store, zerolog.Nop(), services.WithClock(fixedClock))
	require.NoError(t, err)
	return svc, store
}

func newLedgerStore(t *testing.T, dir string) *jsonstore.LedgerStore {
	t.Helper()
	return jsonstore.NewLedgerStore(
		filepath.Join(dir, "contas_pagar.json"),
		filepath.Join(dir, "contas_receber.json"),
		filepath.Join(dir, "categorias.json"),
		zerolog.Nop(),
	)
}

func newUserFixture(t *testing.T) *services.UserService {
	t.Helper()
	store := jsonstore.NewUserStore(filepath.Join(t.TempDir(), "usuarios.json"), zerolog.Nop())
	return services.NewUserService(store, zerolog.Nop(), services.WithUserClock(fixedClock))
}

func newInventoryFixture(t *testing.T) *services.InventoryService {
	t.Helper()
	dir := t.TempDir()
	store := jsonstore.NewInventoryStore(
		filepath.Join(dir, "produtos.json"),
		filepath.Join(dir, "movimentacoes.json"),
		zerolog.Nop(),
	)
	return services.NewInventoryService(store, zerolog.Nop(), services.WithInventoryClock(fixedClock))
}

func newSalesFixture(t *testing.T) (*services.SalesService, *services.InventoryService) {
	t.Helper()
	inventory := newInventoryFixture(t)
	dir := t.TempDir()
	store := jsonstore.NewSalesStore(
		filepath.Join(dir, "clientes.json"),
		filepath.Join(dir, "pedidos.json"),
		zerolog.Nop(),
	)
	sales := services.NewSalesService(store, inventory, zerolog.Nop(), services.WithSalesClock(fixedClock))
	return sales, inventory
}
