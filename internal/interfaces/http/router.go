package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-app/almacen-api/internal/application/auth"
	"github.com/almacen-app/almacen-api/internal/application/billing"
	"github.com/almacen-app/almacen-api/internal/application/catalog"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/application/reports"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *catalog.ProductUseCase
	LocationUC    *catalog.LocationUseCase
	CategoryUC    *catalog.CategoryUseCase
	BrandUC       *catalog.BrandUseCase
	SupplierUC    *catalog.SupplierUseCase
	TaxRateUC     *catalog.TaxRateUseCase
	Ledger        *ledger.Service
	CustomerUC    *billing.CustomerUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	AuthUC        *auth.AuthUseCase
	ReportsUC     *reports.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; el registro de usuarios es solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:id", authHandler.Deactivate)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Catálogo: categorías, marcas, proveedores, impuestos (protegido)
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.BrandUC, deps.SupplierUC, deps.TaxRateUC)
	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Delete("/:id", catalogHandler.DeleteCategory)
	categories.Post("/:id/subcategories", catalogHandler.CreateSubcategory)
	categories.Get("/:id/subcategories", catalogHandler.ListSubcategories)
	protected.Delete("/subcategories/:id", catalogHandler.DeleteSubcategory)

	brands := protected.Group("/brands")
	brands.Post("/", catalogHandler.CreateBrand)
	brands.Get("/", catalogHandler.ListBrands)
	brands.Delete("/:id", catalogHandler.DeleteBrand)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Put("/:id", catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", catalogHandler.DeleteSupplier)

	taxRates := protected.Group("/tax-rates")
	taxRates.Post("/", catalogHandler.CreateTaxRate)
	taxRates.Get("/", catalogHandler.ListTaxRates)
	taxRates.Delete("/:id", catalogHandler.DeleteTaxRate)

	// Inventory (protegido): movimientos del libro de existencias
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/receive", inventoryHandler.Receive)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Post("/deduct", inventoryHandler.Deduct)
	invGroup.Get("/levels", inventoryHandler.Levels)
	invGroup.Get("/total/:id", inventoryHandler.Total)

	// Customers (protegido, facturación)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)

	// Reports y ajustes (protegido; modificar ajustes es solo admin)
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	protected.Get("/reports/dashboard", reportsHandler.Dashboard)
	protected.Get("/reports/audit", reportsHandler.AuditLog)
	protected.Get("/settings", reportsHandler.ListSettings)
	protected.Put("/settings/:name", RequireRole(entity.RoleAdmin), reportsHandler.UpdateSetting)
}
