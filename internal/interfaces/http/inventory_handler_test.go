package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/application/auth"
	"github.com/almacen-app/almacen-api/internal/application/billing"
	"github.com/almacen-app/almacen-api/internal/application/catalog"
	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/application/reports"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
	apphttp "github.com/almacen-app/almacen-api/internal/interfaces/http"
)

// buildAPI levanta la API completa sobre un Store JSON temporal y devuelve la
// app junto con un token de admin listo para usar.
func buildAPI(t *testing.T) (*fiber.App, string) {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "almacen.json"))
	require.NoError(t, err)

	products := jsonstore.NewProductRepository(store)
	locations := jsonstore.NewLocationRepository(store)
	levels := jsonstore.NewInventoryLocationRepository(store)
	audit := jsonstore.NewAuditLogRepository(store)
	categories := jsonstore.NewCategoryRepository(store)
	brands := jsonstore.NewBrandRepository(store)
	suppliers := jsonstore.NewSupplierRepository(store)
	customers := jsonstore.NewCustomerRepository(store)
	taxRates := jsonstore.NewTaxRateRepository(store)
	invoices := jsonstore.NewInvoiceRepository(store)
	users := jsonstore.NewUserRepository(store)
	settings := jsonstore.NewSettingsRepository(store)
	txRunner := jsonstore.NewTxRunner(store)

	ledgerSvc := ledger.NewService(txRunner, products, locations, levels)
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	created, err := authUC.SeedAdmin("admin", "clave-inicial-segura")
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: catalog.NewProductUseCase(
			products, categories, brands, suppliers, locations, levels, invoices, settings,
		),
		LocationUC: catalog.NewLocationUseCase(locations, levels),
		CategoryUC: catalog.NewCategoryUseCase(categories, products),
		BrandUC:    catalog.NewBrandUseCase(brands, products),
		SupplierUC: catalog.NewSupplierUseCase(suppliers, products),
		TaxRateUC:  catalog.NewTaxRateUseCase(taxRates, invoices),
		Ledger:     ledgerSvc,
		CustomerUC: billing.NewCustomerUseCase(customers, invoices),
		CreateInvoice: billing.NewCreateInvoiceUseCase(
			txRunner, ledgerSvc, customers, products, taxRates, invoices, settings,
		),
		AuthUC:    authUC,
		ReportsUC: reports.NewUseCase(products, locations, audit, settings),
		JWTSecret: testJWTSecret,
	})

	// El token se consigue por la misma API, como lo haría un cliente real.
	loginBody, _ := json.Marshal(fiber.Map{"username": "admin", "password": "clave-inicial-segura"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)
	return app, "Bearer " + login.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestInventoryAPI_RecepcionYTraslado(t *testing.T) {
	app, token := buildAPI(t)

	// Alta de catálogo mínimo.
	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{"name": "Taladro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/locations", token, fiber.Map{"name": "Bodega A"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	locA := decode[dto.LocationResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/locations", token, fiber.Map{"name": "Sucursal B"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	locB := decode[dto.LocationResponse](t, resp)

	// Recepción en A.
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/receive", token, fiber.Map{
		"product_id":  product.ID,
		"quantity":    10,
		"location_id": locA.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	qty := decode[dto.StockQuantityResponse](t, resp)
	assert.Equal(t, int64(10), qty.NewQuantity)

	// Traslado parcial a B.
	resp = doJSON(t, app, http.MethodPost, "/api/inventory/transfer", token, fiber.Map{
		"product_id":       product.ID,
		"from_location_id": locA.ID,
		"to_location_id":   locB.ID,
		"quantity":         4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tr := decode[dto.TransferResponse](t, resp)
	assert.Equal(t, int64(6), tr.FromNewQuantity)
	assert.Equal(t, int64(4), tr.ToNewQuantity)

	// El desglose refleja el traslado.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/levels?product_id="+product.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	levels := decode[[]dto.InventoryLocationResponse](t, resp)
	require.Len(t, levels, 2)

	// Y el total no cambió.
	resp = doJSON(t, app, http.MethodGet, "/api/inventory/total/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	total := decode[dto.StockQuantityResponse](t, resp)
	assert.Equal(t, int64(10), total.NewQuantity)
}

func TestInventoryAPI_AjusteInsuficiente_409ConDetalle(t *testing.T) {
	app, token := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{"name": "Esmeril"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/inventory/receive", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/inventory/adjust", token, fiber.Map{
		"product_id": product.ID,
		"delta":      -10,
		"reason":     "conteo físico",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.NotNil(t, body.Detail)
	assert.Equal(t, product.ID, body.Detail.ProductID)
	assert.Equal(t, int64(10), body.Detail.Requested)
	assert.Equal(t, int64(3), body.Detail.Available)
}

func TestInventoryAPI_SinToken_401(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/receive", "", fiber.Map{
		"product_id": "x",
		"quantity":   1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInventoryAPI_FacturaDescuentaStock(t *testing.T) {
	app, token := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, fiber.Map{
		"name":  "Soldadora",
		"price": "150.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/inventory/receive", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/customers", token, fiber.Map{"name": "Constructora Sur"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	customer := decode[dto.CustomerResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/invoices", token, fiber.Map{
		"customer_id": customer.ID,
		"items":       []fiber.Map{{"product_id": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	invoice := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, entity.InvoiceStatusPending, invoice.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/inventory/total/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	total := decode[dto.StockQuantityResponse](t, resp)
	assert.Equal(t, int64(3), total.NewQuantity, "la factura descuenta el stock")

	// La bitácora liga el descuento a la factura.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/audit?action="+entity.ActionStockDeducted, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decode[[]*entity.AuditEntry](t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, invoice.ID, entries[0].InvoiceID)
}
