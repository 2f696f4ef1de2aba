package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/almacen-app/almacen-api/internal/application/auth"
	"github.com/almacen-app/almacen-api/internal/application/billing"
	"github.com/almacen-app/almacen-api/internal/application/catalog"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/application/reports"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
	"github.com/almacen-app/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/almacen-app/almacen-api/internal/interfaces/http"
	"github.com/almacen-app/almacen-api/pkg/config"
	"github.com/almacen-app/almacen-api/pkg/logger"
)

// txRunner une los dos contratos transaccionales que exponen ambos drivers.
type txRunner interface {
	ledger.TxRunner
	billing.BillingTxRunner
}

// storeRepos agrupa los repositorios construidos para el driver elegido.
type storeRepos struct {
	tx         txRunner
	products   repository.ProductRepository
	locations  repository.LocationRepository
	levels     repository.InventoryLocationRepository
	audit      repository.AuditLogRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	suppliers  repository.SupplierRepository
	customers  repository.CustomerRepository
	taxRates   repository.TaxRateRepository
	invoices   repository.InvoiceRepository
	users      repository.UserRepository
	settings   repository.SettingsRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	repos, cleanup, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("inicializando almacenamiento")
	}
	defer cleanup()

	ledgerSvc := ledger.NewService(repos.tx, repos.products, repos.locations, repos.levels)
	productUC := catalog.NewProductUseCase(
		repos.products, repos.categories, repos.brands, repos.suppliers,
		repos.locations, repos.levels, repos.invoices, repos.settings,
	)
	locationUC := catalog.NewLocationUseCase(repos.locations, repos.levels)
	categoryUC := catalog.NewCategoryUseCase(repos.categories, repos.products)
	brandUC := catalog.NewBrandUseCase(repos.brands, repos.products)
	supplierUC := catalog.NewSupplierUseCase(repos.suppliers, repos.products)
	taxRateUC := catalog.NewTaxRateUseCase(repos.taxRates, repos.invoices)
	customerUC := billing.NewCustomerUseCase(repos.customers, repos.invoices)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		repos.tx, ledgerSvc,
		repos.customers, repos.products, repos.taxRates, repos.invoices, repos.settings,
	)
	reportsUC := reports.NewUseCase(repos.products, repos.locations, repos.audit, repos.settings)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Primer arranque: crea el usuario admin si no existe ninguno.
	if cfg.Admin.Password != "" {
		created, err := authUC.SeedAdmin(cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrando usuario admin")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("usuario admin creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Almacén API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		LocationUC:    locationUC,
		CategoryUC:    categoryUC,
		BrandUC:       brandUC,
		SupplierUC:    supplierUC,
		TaxRateUC:     taxRateUC,
		Ledger:        ledgerSvc,
		CustomerUC:    customerUC,
		CreateInvoice: createInvoiceUC,
		AuthUC:        authUC,
		ReportsUC:     reportsUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildRepos construye el juego de repositorios para el driver configurado.
// El cleanup cierra los recursos del driver (pool de Postgres).
func buildRepos(ctx context.Context, cfg *config.Config) (*storeRepos, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return &storeRepos{
			tx:         postgres.NewTxRunner(pool),
			products:   postgres.NewProductRepository(pool),
			locations:  postgres.NewLocationRepository(pool),
			levels:     postgres.NewInventoryLocationRepository(pool),
			audit:      postgres.NewAuditLogRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			brands:     postgres.NewBrandRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			customers:  postgres.NewCustomerRepository(pool),
			taxRates:   postgres.NewTaxRateRepository(pool),
			invoices:   postgres.NewInvoiceRepository(pool),
			users:      postgres.NewUserRepository(pool),
			settings:   postgres.NewSettingsRepository(pool),
		}, pool.Close, nil
	default: // config.DriverJSON
		store, err := jsonstore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return &storeRepos{
			tx:         jsonstore.NewTxRunner(store),
			products:   jsonstore.NewProductRepository(store),
			locations:  jsonstore.NewLocationRepository(store),
			levels:     jsonstore.NewInventoryLocationRepository(store),
			audit:      jsonstore.NewAuditLogRepository(store),
			categories: jsonstore.NewCategoryRepository(store),
			brands:     jsonstore.NewBrandRepository(store),
			suppliers:  jsonstore.NewSupplierRepository(store),
			customers:  jsonstore.NewCustomerRepository(store),
			taxRates:   jsonstore.NewTaxRateRepository(store),
			invoices:   jsonstore.NewInvoiceRepository(store),
			users:      jsonstore.NewUserRepository(store),
			settings:   jsonstore.NewSettingsRepository(store),
		}, func() {}, nil
	}
}
