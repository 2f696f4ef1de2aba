package reports_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/application/reports"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
)

const testActor = "00000000-0000-0000-0000-0000000000dd"

type fixture struct {
	uc       *reports.UseCase
	products repository.ProductRepository
	ledger   *ledger.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "almacen.json"))
	require.NoError(t, err)

	products := jsonstore.NewProductRepository(store)
	locations := jsonstore.NewLocationRepository(store)
	levels := jsonstore.NewInventoryLocationRepository(store)
	audit := jsonstore.NewAuditLogRepository(store)
	settings := jsonstore.NewSettingsRepository(store)

	return &fixture{
		uc:       reports.NewUseCase(products, locations, audit, settings),
		products: products,
		ledger:   ledger.NewService(jsonstore.NewTxRunner(store), products, locations, levels),
	}
}

func TestDashboard_ContadoresYValorizacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Tres productos: uno sano, uno bajo el umbral y uno agotado.
	sano := &entity.Product{Name: "Cemento", Cost: decimal.RequireFromString("8.00"), MinStock: 2}
	bajo := &entity.Product{Name: "Yeso", Cost: decimal.RequireFromString("3.50"), MinStock: 10}
	agotado := &entity.Product{Name: "Cal", Cost: decimal.RequireFromString("2.00")}
	for _, p := range []*entity.Product{sano, bajo, agotado} {
		require.NoError(t, f.products.Create(p))
	}
	_, err := f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: sano.ID, Quantity: 20})
	require.NoError(t, err)
	_, err = f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: bajo.ID, Quantity: 4})
	require.NoError(t, err)

	resp, err := f.uc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalProducts)
	assert.Equal(t, int64(1), resp.OutOfStock)
	// "bajo" (4 <= 10) y "agotado" (0 <= umbral por defecto 5) califican.
	assert.Equal(t, int64(2), resp.LowStockCount)
	require.Len(t, resp.LowStockItems, 2)

	// 20*8.00 + 4*3.50 + 0*2.00 = 174.00 a costo.
	assert.Equal(t, "174.00", resp.InventoryValue)
}

func TestDashboard_UmbralConfigurable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Grava"} // sin MinStock: usa el umbral global
	require.NoError(t, f.products.Create(p))
	_, err := f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 8})
	require.NoError(t, err)

	resp, err := f.uc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.LowStockCount, "8 unidades superan el umbral por defecto de 5")

	_, err = f.uc.UpdateSetting(entity.SettingLowStockThreshold, "10")
	require.NoError(t, err)

	resp, err = f.uc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.LowStockCount, "con umbral 10 el producto queda en stock bajo")
}

func TestAuditLog_FiltrosYOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Arena"}
	require.NoError(t, f.products.Create(p))
	_, err := f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10})
	require.NoError(t, err)
	_, err = f.ledger.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -2, Reason: "merma"})
	require.NoError(t, err)

	entries, err := f.uc.AuditLog(repository.AuditFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Más reciente primero.
	assert.Equal(t, entity.ActionStockAdjusted, entries[0].Action)
	assert.Equal(t, entity.ActionStockReceived, entries[1].Action)

	entries, err = f.uc.AuditLog(repository.AuditFilter{Action: entity.ActionStockReceived})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = f.uc.AuditLog(repository.AuditFilter{ActorID: "otro-usuario"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateSetting_Validaciones(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateSetting("", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateSetting(entity.SettingLowStockThreshold, "no-numérico")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateSetting(entity.SettingLowStockThreshold, "-3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := f.uc.UpdateSetting(entity.SettingInvoicePrefix, "FAC")
	require.NoError(t, err)
	assert.Equal(t, "FAC", s.Value)

	list, err := f.uc.Settings()
	require.NoError(t, err)
	var found bool
	for _, item := range list {
		if item.Name == entity.SettingInvoicePrefix {
			found = true
			assert.Equal(t, "FAC", item.Value)
		}
	}
	assert.True(t, found)
}
