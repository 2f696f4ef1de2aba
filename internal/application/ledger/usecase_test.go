package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
)

const testActor = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: Ledger sobre un Store JSON en un directorio temporal
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	svc       *ledger.Service
	products  repository.ProductRepository
	levels    repository.InventoryLocationRepository
	audit     repository.AuditLogRepository
	locations repository.LocationRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "almacen.json"))
	require.NoError(t, err)

	f := &fixture{
		products:  jsonstore.NewProductRepository(store),
		levels:    jsonstore.NewInventoryLocationRepository(store),
		audit:     jsonstore.NewAuditLogRepository(store),
		locations: jsonstore.NewLocationRepository(store),
	}
	f.svc = ledger.NewService(jsonstore.NewTxRunner(store), f.products, f.locations, f.levels)
	return f
}

func (f *fixture) newProduct(t *testing.T, name string, qty int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Quantity: qty}
	require.NoError(t, f.products.Create(p))
	return p
}

func (f *fixture) newLocation(t *testing.T, name string) *entity.Location {
	t.Helper()
	l := &entity.Location{Name: name}
	require.NoError(t, f.locations.Create(l))
	return l
}

func (f *fixture) productQty(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) rowQty(t *testing.T, productID, locationID string) int64 {
	t.Helper()
	row, err := f.levels.Get(productID, locationID)
	require.NoError(t, err)
	if row == nil {
		return 0
	}
	return row.Quantity
}

func (f *fixture) auditEntries(t *testing.T, productID string) []*entity.AuditEntry {
	t.Helper()
	entries, err := f.audit.List(repository.AuditFilter{ProductID: productID, Limit: 100})
	require.NoError(t, err)
	return entries
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_IncrementaAgregado(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Tornillos", 0)

	newQty, err := f.svc.Receive(context.Background(), testActor, ledger.ReceiveInput{
		ProductID: p.ID,
		Quantity:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), newQty)
	assert.Equal(t, int64(10), f.productQty(t, p.ID))

	entries := f.auditEntries(t, p.ID)
	require.Len(t, entries, 1, "una mutación exitosa = una entrada en la bitácora")
	assert.Equal(t, entity.ActionStockReceived, entries[0].Action)
	assert.Equal(t, int64(10), entries[0].Delta)
	assert.Equal(t, testActor, entries[0].ActorID)
}

func TestReceive_ConUbicacion_CreaFilaDesglose(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Tuercas", 0)
	loc := f.newLocation(t, "Bodega A")

	_, err := f.svc.Receive(context.Background(), testActor, ledger.ReceiveInput{
		ProductID:  p.ID,
		Quantity:   10,
		LocationID: loc.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), f.rowQty(t, p.ID, loc.ID))
	assert.Equal(t, int64(10), f.productQty(t, p.ID))

	total, err := f.svc.TotalForProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
}

func TestReceive_SinDesglose_NoEmpiezaARastrear(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Clavos", 0)

	// Sin ubicación y sin filas previas: sólo se mueve el agregado.
	_, err := f.svc.Receive(context.Background(), testActor, ledger.ReceiveInput{
		ProductID: p.ID,
		Quantity:  7,
	})
	require.NoError(t, err)

	rows, err := f.levels.ListByProduct(p.ID)
	require.NoError(t, err)
	assert.Empty(t, rows, "no debe crearse desglose implícito")
	assert.Equal(t, int64(7), f.productQty(t, p.ID))
}

func TestReceive_PrimeraFila_AbsorbeRemanenteNoRastreado(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Bisagras", 0)
	loc := f.newLocation(t, "Bodega A")
	ctx := context.Background()

	// 7 unidades sin rastrear, luego la primera recepción con ubicación.
	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 7})
	require.NoError(t, err)
	newQty, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: loc.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(17), newQty)

	// El remanente no rastreado se atribuye a la primera fila: el desglose
	// nace cuadrado con el agregado y el total no pierde unidades.
	assert.Equal(t, int64(17), f.rowQty(t, p.ID, loc.ID))
	total, err := f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), total)
}

func TestAdjust_PositivoConUbicacion_PrimeraFilaAbsorbeRemanente(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Grapas", 5)
	loc := f.newLocation(t, "Mostrador")
	ctx := context.Background()

	newQty, err := f.svc.Adjust(ctx, testActor, ledger.AdjustInput{
		ProductID:  p.ID,
		Delta:      3,
		Reason:     "recuento",
		LocationID: loc.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), newQty)
	assert.Equal(t, int64(8), f.rowQty(t, p.ID, loc.ID))

	total, err := f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, newQty, total)
}

func TestReceive_BitacoraConLoteEnDetalles(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Lijas", 0)

	_, err := f.svc.Receive(context.Background(), testActor, ledger.ReceiveInput{
		ProductID: p.ID,
		Quantity:  4,
		BatchRef:  "L-2026-014",
	})
	require.NoError(t, err)

	entries := f.auditEntries(t, p.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "receive", entries[0].Reason)
	assert.Contains(t, entries[0].Details, "Lote: L-2026-014")
}

func TestReceive_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Arandelas", 0)
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")

	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa debe rechazarse")

	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: "no-existe", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 5, LocationID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la ubicación indicada debe existir")

	assert.Empty(t, f.auditEntries(t, p.ID), "las operaciones fallidas no escriben bitácora")
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_NegativoInsuficiente_FallaCerrado(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Bisagras", 3)

	_, err := f.svc.Adjust(context.Background(), testActor, ledger.AdjustInput{
		ProductID: p.ID,
		Delta:     -10,
		Reason:    "conteo físico",
	})
	require.Error(t, err)

	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, int64(10), stockErr.Requested)
	assert.Equal(t, int64(3), stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se movió: ni agregado, ni bitácora.
	assert.Equal(t, int64(3), f.productQty(t, p.ID))
	assert.Empty(t, f.auditEntries(t, p.ID))
}

func TestAdjust_NegativoValido_DescuentaDesglose(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Pernos", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Mostrador")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: locA.ID})
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 4, LocationID: locB.ID})
	require.NoError(t, err)

	// Sin ubicación: el drenaje vacía primero la fila con más stock.
	newQty, err := f.svc.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -6, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), newQty)
	assert.Equal(t, int64(4), f.rowQty(t, p.ID, locA.ID))
	assert.Equal(t, int64(4), f.rowQty(t, p.ID, locB.ID))
}

func TestAdjust_ConUbicacion_ChequeaLaFila(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Cerraduras", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Mostrador")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: locA.ID})
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 2, LocationID: locB.ID})
	require.NoError(t, err)

	// El agregado (12) alcanza, pero la fila de B (2) no: falla cerrado.
	_, err = f.svc.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -5, LocationID: locB.ID, Reason: "rotura"})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, locB.ID, stockErr.LocationID)
	assert.Equal(t, int64(2), stockErr.Available)

	assert.Equal(t, int64(12), f.productQty(t, p.ID))
	assert.Equal(t, int64(2), f.rowQty(t, p.ID, locB.ID))
}

func TestAdjust_PositivoSinUbicacion_VaAFilaPorDefecto(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Candados", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Mostrador")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 9, LocationID: locA.ID})
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 3, LocationID: locB.ID})
	require.NoError(t, err)

	// Sin ubicación explícita el aumento cae en la fila más grande, para que
	// sum(desglose) siga igual al agregado.
	newQty, err := f.svc.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: 5, Reason: "recuento"})
	require.NoError(t, err)
	assert.Equal(t, int64(17), newQty)
	assert.Equal(t, int64(14), f.rowQty(t, p.ID, locA.ID))
	assert.Equal(t, int64(3), f.rowQty(t, p.ID, locB.ID))

	total, err := f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, newQty, total, "agregado y desglose deben moverse juntos")
}

func TestAdjust_DeltaCero_Invalido(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Llaves", 5)

	_, err := f.svc.Adjust(context.Background(), testActor, ledger.AdjustInput{ProductID: p.ID, Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ConservaElTotal(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Martillos", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Sucursal B")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: locA.ID})
	require.NoError(t, err)

	fromQty, toQty, err := f.svc.Transfer(ctx, testActor, ledger.TransferInput{
		ProductID:      p.ID,
		FromLocationID: locA.ID,
		ToLocationID:   locB.ID,
		Quantity:       4,
		Reason:         "reabastecimiento sucursal",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), fromQty)
	assert.Equal(t, int64(4), toQty)

	// El agregado no se toca y el total se conserva.
	assert.Equal(t, int64(10), f.productQty(t, p.ID))
	total, err := f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	entries, err := f.audit.List(repository.AuditFilter{Action: entity.ActionStockTransferred})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, locA.ID, entries[0].FromLocationID)
	assert.Equal(t, locB.ID, entries[0].ToLocationID)
	assert.Equal(t, int64(4), entries[0].Delta)
}

func TestTransfer_OrigenInsuficiente_FallaCerrado(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Destornilladores", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Sucursal B")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 3, LocationID: locA.ID})
	require.NoError(t, err)

	_, _, err = f.svc.Transfer(ctx, testActor, ledger.TransferInput{
		ProductID:      p.ID,
		FromLocationID: locA.ID,
		ToLocationID:   locB.ID,
		Quantity:       5,
	})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, locA.ID, stockErr.LocationID)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(3), stockErr.Available)

	// Ninguna fila se movió.
	assert.Equal(t, int64(3), f.rowQty(t, p.ID, locA.ID))
	assert.Equal(t, int64(0), f.rowQty(t, p.ID, locB.ID))
}

func TestTransfer_MismaUbicacion_Invalido(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Alicates", 0)
	locA := f.newLocation(t, "Bodega A")

	_, _, err := f.svc.Transfer(context.Background(), testActor, ledger.TransferInput{
		ProductID:      p.ID,
		FromLocationID: locA.ID,
		ToLocationID:   locA.ID,
		Quantity:       1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_DestinoInexistente(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Serruchos", 0)
	locA := f.newLocation(t, "Bodega A")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 5, LocationID: locA.ID})
	require.NoError(t, err)

	_, _, err = f.svc.Transfer(ctx, testActor, ledger.TransferInput{
		ProductID:      p.ID,
		FromLocationID: locA.ID,
		ToLocationID:   "no-existe",
		Quantity:       2,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_RecortaACero(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Lijas", 5)

	// Se pide más de lo disponible: la venta no se bloquea, se recorta a cero.
	newQty, err := f.svc.Deduct(context.Background(), testActor, ledger.DeductInput{
		ProductID: p.ID,
		Quantity:  8,
		InvoiceID: "inv-001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), newQty)
	assert.Equal(t, int64(0), f.productQty(t, p.ID))

	entries := f.auditEntries(t, p.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionStockDeducted, entries[0].Action)
	assert.Equal(t, int64(-5), entries[0].Delta, "el delta registra lo realmente descontado")
	assert.Equal(t, "inv-001", entries[0].InvoiceID)
	assert.Equal(t, "sale", entries[0].Reason)
}

func TestDeduct_DrenaDesgloseDeMayorAMenor(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Brochas", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Mostrador")
	ctx := context.Background()

	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: locA.ID})
	require.NoError(t, err)
	_, err = f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 4, LocationID: locB.ID})
	require.NoError(t, err)

	newQty, err := f.svc.Deduct(ctx, testActor, ledger.DeductInput{ProductID: p.ID, Quantity: 6, InvoiceID: "inv-002"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), newQty)
	assert.Equal(t, int64(4), f.rowQty(t, p.ID, locA.ID))
	assert.Equal(t, int64(4), f.rowQty(t, p.ID, locB.ID))
}

func TestDeduct_SinFactura_Invalido(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Rodillos", 5)

	_, err := f.svc.Deduct(context.Background(), testActor, ledger.DeductInput{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "todo descuento debe estar ligado a una factura")
}

// ──────────────────────────────────────────────────────────────────────────────
// TotalForProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalForProduct_SinDesgloseUsaAgregado(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Cintas", 9)

	total, err := f.svc.TotalForProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), total)

	_, err = f.svc.TotalForProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioCompleto(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Taladros", 0)
	locA := f.newLocation(t, "Bodega A")
	locB := f.newLocation(t, "Sucursal B")
	ctx := context.Background()

	// Recepción inicial en A.
	_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 10, LocationID: locA.ID})
	require.NoError(t, err)

	// Traslado parcial a B: el total no cambia.
	fromQty, toQty, err := f.svc.Transfer(ctx, testActor, ledger.TransferInput{
		ProductID: p.ID, FromLocationID: locA.ID, ToLocationID: locB.ID, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), fromQty)
	assert.Equal(t, int64(4), toQty)

	total, err := f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	// Venta de 6 unidades.
	newQty, err := f.svc.Deduct(ctx, testActor, ledger.DeductInput{ProductID: p.ID, Quantity: 6, InvoiceID: "inv-003"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), newQty)

	// Un ajuste que dejaría el stock negativo falla y no mueve nada.
	_, err = f.svc.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -10, Reason: "error de captura"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	total, err = f.svc.TotalForProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	// Tres mutaciones exitosas = tres entradas en la bitácora.
	assert.Len(t, f.auditEntries(t, p.ID), 3)
}

func TestConcurrencia_RecepcionesSinPerdida(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Guantes", 0)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int64(n), f.productQty(t, p.ID), "no debe perderse ninguna recepción concurrente")
	assert.Len(t, f.auditEntries(t, p.ID), n)
}

func TestConcurrencia_AjustesCompetidos_NuncaNegativo(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t, "Cascos", 10)
	ctx := context.Background()

	// 20 ajustes de -1 contra stock 10: exactamente 10 deben fallar cerrado.
	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -1, Reason: "retiro"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var failed int
	for err := range results {
		if err != nil {
			require.True(t, errors.Is(err, domain.ErrInsufficientStock), "el único fallo admitido es stock insuficiente: %v", err)
			failed++
		}
	}
	assert.Equal(t, 10, failed)
	assert.Equal(t, int64(0), f.productQty(t, p.ID))
	assert.Len(t, f.auditEntries(t, p.ID), 10, "sólo las mutaciones exitosas escriben bitácora")
}
