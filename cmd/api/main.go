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

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/catalog"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/ledger"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/application/reports"
	"github.com/jhoicas/comercio-api/internal/application/returns"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
	"github.com/jhoicas/comercio-api/internal/infrastructure/cache"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
	"github.com/jhoicas/comercio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/comercio-api/internal/interfaces/http"
	"github.com/jhoicas/comercio-api/pkg/config"
	"github.com/jhoicas/comercio-api/pkg/logger"
)

// stores agrupa el TxRunner y los repositorios de solo lectura que usan los
// casos de uso fuera de transacción. Permite elegir driver por configuración.
type stores struct {
	txRunner   ledger.TxRunner
	products   repository.ProductRepository
	movements  repository.MovementRepository
	sales      repository.SaleRepository
	purchases  repository.PurchaseRepository
	suppliers  repository.SupplierRepository
	returns    repository.ReturnRepository
	expenses   repository.ExpenseRepository
	reports    repository.ReportRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var st stores
	switch cfg.App.StoreDriver {
	case "memory":
		mem := memory.NewStore()
		st = stores{
			txRunner:   mem,
			products:   mem.Products(),
			movements:  mem.Movements(),
			sales:      mem.Sales(),
			purchases:  mem.Purchases(),
			suppliers:  mem.Suppliers(),
			returns:    mem.Returns(),
			expenses:   mem.Expenses(),
			reports:    mem.Reports(),
			users:      mem.Users(),
			categories: mem.Categories(),
		}
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		st = stores{
			txRunner:   postgres.NewTxRunner(pool),
			products:   postgres.NewProductRepository(pool),
			movements:  postgres.NewMovementRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			purchases:  postgres.NewPurchaseRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			returns:    postgres.NewReturnRepository(pool),
			expenses:   postgres.NewExpenseRepository(pool),
			reports:    postgres.NewReportRepository(pool),
			users:      postgres.NewUserRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
		}
	}

	// Cache de reportes opcional: sin REDIS_ADDR los casos de uso consultan
	// directo a la base en cada petición.
	var reportCache reports.Cache
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		reportCache = rc
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes habilitado")
	}

	authUC := auth.NewUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	salesUC := sales.NewUseCase(st.txRunner, st.sales, st.products)
	purchasesUC := purchases.NewUseCase(st.txRunner, st.purchases, st.suppliers)
	returnsUC := returns.NewUseCase(st.txRunner, st.returns)
	inventoryUC := inventory.NewUseCase(st.products, st.movements, reportCache)
	reportsUC := reports.NewUseCase(st.reports, st.expenses, st.suppliers, reportCache)
	catalogUC := catalog.NewUseCase(st.products, st.suppliers, st.categories, st.expenses)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comercio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SalesUC:     salesUC,
		PurchasesUC: purchasesUC,
		ReturnsUC:   returnsUC,
		InventoryUC: inventoryUC,
		ReportsUC:   reportsUC,
		CatalogUC:   catalogUC,
		JWTSecret:   cfg.JWT.Secret,
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
