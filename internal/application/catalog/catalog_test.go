package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/application/catalog"
	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
)

const testActor = "00000000-0000-0000-0000-0000000000cc"

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: todos los casos de uso de catálogo sobre un Store JSON
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	products   *catalog.ProductUseCase
	locations  *catalog.LocationUseCase
	categories *catalog.CategoryUseCase
	brands     *catalog.BrandUseCase
	suppliers  *catalog.SupplierUseCase
	taxRates   *catalog.TaxRateUseCase
	ledger     *ledger.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "almacen.json"))
	require.NoError(t, err)

	products := jsonstore.NewProductRepository(store)
	locations := jsonstore.NewLocationRepository(store)
	levels := jsonstore.NewInventoryLocationRepository(store)
	categories := jsonstore.NewCategoryRepository(store)
	brands := jsonstore.NewBrandRepository(store)
	suppliers := jsonstore.NewSupplierRepository(store)
	taxRates := jsonstore.NewTaxRateRepository(store)
	invoices := jsonstore.NewInvoiceRepository(store)
	settings := jsonstore.NewSettingsRepository(store)

	return &fixture{
		products: catalog.NewProductUseCase(
			products, categories, brands, suppliers, locations, levels, invoices, settings,
		),
		locations:  catalog.NewLocationUseCase(locations, levels),
		categories: catalog.NewCategoryUseCase(categories, products),
		brands:     catalog.NewBrandUseCase(brands, products),
		suppliers:  catalog.NewSupplierUseCase(suppliers, products),
		taxRates:   catalog.NewTaxRateUseCase(taxRates, invoices),
		ledger:     ledger.NewService(jsonstore.NewTxRunner(store), products, locations, levels),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateEmpiezaEnCero(t *testing.T) {
	f := newFixture(t)

	p, err := f.products.Create(dto.CreateProductRequest{
		Name:    "Pintura blanca",
		Barcode: "770001",
		Price:   decimal.RequireFromString("12.50"),
		Cost:    decimal.RequireFromString("8.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity, "el stock inicial siempre es cero; entra por el libro")
	assert.True(t, p.LowStock, "cantidad cero queda bajo el umbral")

	got, err := f.products.GetByBarcode("770001")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProduct_BarcodeDuplicado(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.Create(dto.CreateProductRequest{Name: "A", Barcode: "770002"})
	require.NoError(t, err)
	_, err = f.products.Create(dto.CreateProductRequest{Name: "B", Barcode: "770002"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_ReferenciasInvalidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.Create(dto.CreateProductRequest{Name: "X", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Create(dto.CreateProductRequest{Name: "X", BrandID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Create(dto.CreateProductRequest{Name: "X", LocationID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_SubcategoriaDeOtraCategoria(t *testing.T) {
	f := newFixture(t)

	catA, err := f.categories.Create(dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)
	catB, err := f.categories.Create(dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)
	sub, err := f.categories.CreateSubcategory(catA.ID, dto.CreateSubcategoryRequest{Name: "Manuales"})
	require.NoError(t, err)

	// La subcategoría debe colgar de la categoría indicada.
	_, err = f.products.Create(dto.CreateProductRequest{
		Name:          "Llave inglesa",
		CategoryID:    catB.ID,
		SubcategoryID: sub.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Create(dto.CreateProductRequest{
		Name:          "Llave inglesa",
		CategoryID:    catA.ID,
		SubcategoryID: sub.ID,
	})
	assert.NoError(t, err)
}

func TestProduct_UpdatePreservaCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(dto.CreateProductRequest{Name: "Thinner", Price: decimal.RequireFromString("4.00")})
	require.NoError(t, err)
	_, err = f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 6})
	require.NoError(t, err)

	got, err := f.products.Update(p.ID, dto.UpdateProductRequest{
		Name:  "Thinner corriente",
		Price: decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Thinner corriente", got.Name)
	assert.Equal(t, int64(6), got.Quantity, "el update de catálogo no toca el stock")
}

func TestProduct_DeleteConStock_Rechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(dto.CreateProductRequest{Name: "Silicona"})
	require.NoError(t, err)
	_, err = f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.Delete(p.ID), domain.ErrConflict)

	// Al agotar el stock el borrado procede.
	_, err = f.ledger.Adjust(ctx, testActor, ledger.AdjustInput{ProductID: p.ID, Delta: -2, Reason: "baja"})
	require.NoError(t, err)
	assert.NoError(t, f.products.Delete(p.ID))

	_, err = f.products.GetByID(p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocation_DeleteConDesglose_Rechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc, err := f.locations.Create(dto.CreateLocationRequest{Name: "Bodega trasera"})
	require.NoError(t, err)
	p, err := f.products.Create(dto.CreateProductRequest{Name: "Manguera"})
	require.NoError(t, err)
	_, err = f.ledger.Receive(ctx, testActor, ledger.ReceiveInput{ProductID: p.ID, Quantity: 3, LocationID: loc.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.locations.Delete(loc.ID), domain.ErrConflict,
		"una ubicación con filas de desglose no se puede borrar")

	empty, err := f.locations.Create(dto.CreateLocationRequest{Name: "Vitrina"})
	require.NoError(t, err)
	assert.NoError(t, f.locations.Delete(empty.ID))
}

func TestLocation_CRUD(t *testing.T) {
	f := newFixture(t)

	loc, err := f.locations.Create(dto.CreateLocationRequest{Name: "Bodega A", Address: "Calle 1"})
	require.NoError(t, err)

	got, err := f.locations.Update(loc.ID, dto.CreateLocationRequest{Name: "Bodega principal"})
	require.NoError(t, err)
	assert.Equal(t, "Bodega principal", got.Name)

	list, err := f.locations.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.locations.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, marcas, proveedores, impuestos: guards de borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_DeleteConProductos_Rechazado(t *testing.T) {
	f := newFixture(t)

	cat, err := f.categories.Create(dto.CreateCategoryRequest{Name: "Eléctricos"})
	require.NoError(t, err)
	_, err = f.products.Create(dto.CreateProductRequest{Name: "Cable", CategoryID: cat.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.categories.Delete(cat.ID), domain.ErrConflict)
}

func TestCategory_DeleteConSubcategorias_Rechazado(t *testing.T) {
	f := newFixture(t)

	cat, err := f.categories.Create(dto.CreateCategoryRequest{Name: "Plomería"})
	require.NoError(t, err)
	sub, err := f.categories.CreateSubcategory(cat.ID, dto.CreateSubcategoryRequest{Name: "PVC"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.categories.Delete(cat.ID), domain.ErrConflict)

	// Al quitar la subcategoría, el borrado procede.
	require.NoError(t, f.categories.DeleteSubcategory(sub.ID))
	assert.NoError(t, f.categories.Delete(cat.ID))
}

func TestBrand_DeleteConProductos_Rechazado(t *testing.T) {
	f := newFixture(t)

	brand, err := f.brands.Create(dto.CreateBrandRequest{Name: "Truper"})
	require.NoError(t, err)
	_, err = f.products.Create(dto.CreateProductRequest{Name: "Flexómetro", BrandID: brand.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.brands.Delete(brand.ID), domain.ErrConflict)
}

func TestSupplier_DeleteConProductos_Rechazado(t *testing.T) {
	f := newFixture(t)

	sup, err := f.suppliers.Create(dto.CreateSupplierRequest{Name: "Distribuidora Norte"})
	require.NoError(t, err)
	_, err = f.products.Create(dto.CreateProductRequest{Name: "Teflón", SupplierID: sup.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.suppliers.Delete(sup.ID), domain.ErrConflict)
}

func TestTaxRate_RangoValido(t *testing.T) {
	f := newFixture(t)

	_, err := f.taxRates.Create(dto.CreateTaxRateRequest{Name: "Negativa", Rate: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.taxRates.Create(dto.CreateTaxRateRequest{Name: "Exagerada", Rate: decimal.RequireFromString("101")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tr, err := f.taxRates.Create(dto.CreateTaxRateRequest{Name: "IVA 19%", Rate: decimal.RequireFromString("19")})
	require.NoError(t, err)
	assert.NoError(t, f.taxRates.Delete(tr.ID), "una tasa sin facturas se puede borrar")
}
