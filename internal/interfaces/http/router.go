package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/catalog"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/application/reports"
	"github.com/jhoicas/comercio-api/internal/application/returns"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	SalesUC     *sales.UseCase
	PurchasesUC *purchases.UseCase
	ReturnsUC   *returns.UseCase
	InventoryUC *inventory.UseCase
	ReportsUC   *reports.UseCase
	CatalogUC   *catalog.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)

	expenses := protected.Group("/expenses", RequireRole(entity.RoleAdmin))
	expenses.Post("/", catalogHandler.CreateExpense)
	expenses.Get("/", catalogHandler.ListExpenses)

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales", RequireRole(entity.RoleAdmin, entity.RoleVendedor))
	salesGroup.Post("/", salesHandler.Checkout)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/:id/cancel", salesHandler.Cancel)

	// Compras
	purchasesHandler := NewPurchasesHandler(deps.PurchasesUC)
	purchasesGroup := protected.Group("/purchases", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	purchasesGroup.Post("/", purchasesHandler.Intake)
	purchasesGroup.Get("/:id", purchasesHandler.GetByID)
	purchasesGroup.Post("/:id/payments", purchasesHandler.Settle)
	suppliers.Get("/:id/purchases", purchasesHandler.ListBySupplier)

	// Devoluciones
	returnsHandler := NewReturnsHandler(deps.ReturnsUC)
	returnsGroup := protected.Group("/returns")
	returnsGroup.Post("/", returnsHandler.Create)
	returnsGroup.Get("/", returnsHandler.List)
	returnsGroup.Get("/:id", returnsHandler.GetByID)
	returnsGroup.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), returnsHandler.Approve)
	returnsGroup.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), returnsHandler.Reject)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	products.Get("/:id/stock", inventoryHandler.Stock)

	// Reportes (solo admin)
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportsGroup.Get("/profit-loss", reportsHandler.ProfitLoss)
	suppliers.Get("/:id/reconciliation", reportsHandler.ReconcileSupplier)
}
