package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	purchaseuc "github.com/jhoicas/comercio-api/internal/application/purchases"
	returnuc "github.com/jhoicas/comercio-api/internal/application/returns"
	saleuc "github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const (
	companyID = "empresa-1"
	userID    = "usuario-1"
)

func seedCatalog(t *testing.T, store *memory.Store) {
	t.Helper()
	now := time.Now()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID:            "p1",
		CompanyID:     companyID,
		SKU:           "SKU-p1",
		Name:          "Producto p1",
		PurchasePrice: decimal.RequireFromString("30"),
		SalePrice:     decimal.RequireFromString("50"),
		Quantity:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{
		ID:        "prov1",
		CompanyID: companyID,
		Name:      "Proveedor Uno",
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestSummary_CierraElEstado(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	ctx := context.Background()

	// Compra de 10 unidades a 30 para tener stock.
	puc := purchaseuc.NewUseCase(store, store.Purchases(), store.Suppliers())
	_, err := puc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: decimal.RequireFromString("30")}},
		PaidAmount: decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	// Venta de 4 a 50 y devolución aprobada de 1 por 50.
	suc := saleuc.NewUseCase(store, store.Sales(), store.Products())
	sale, err := suc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	ruc := returnuc.NewUseCase(store, store.Returns())
	_, err = ruc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:        string(entity.ReturnCustomer),
		ProductID:   "p1",
		SaleID:      sale.ID,
		Quantity:    1,
		Amount:      decimal.RequireFromString("50"),
		AutoApprove: true,
	})
	require.NoError(t, err)

	// Un gasto operativo dentro del rango.
	require.NoError(t, store.Expenses().Create(ctx, &entity.Expense{
		ID:          "g1",
		CompanyID:   companyID,
		Description: "arriendo",
		Amount:      decimal.RequireFromString("40"),
		Date:        time.Now(),
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}))

	uc := NewUseCase(store.Reports(), store.Expenses(), store.Suppliers(), nil)
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	got, err := uc.Summary(ctx, companyID, from, to)
	require.NoError(t, err)

	// revenue 200, cogs 4*30=120, devoluciones 50, gastos 40.
	assert.True(t, got.Revenue.Equal(decimal.RequireFromString("200")), "revenue %s", got.Revenue)
	assert.True(t, got.CostOfGoods.Equal(decimal.RequireFromString("120")), "cogs %s", got.CostOfGoods)
	assert.True(t, got.ReturnsDeduction.Equal(decimal.RequireFromString("50")))
	assert.True(t, got.GrossProfit.Equal(decimal.RequireFromString("30")), "bruta %s", got.GrossProfit)
	assert.True(t, got.Expenses.Equal(decimal.RequireFromString("40")))
	assert.True(t, got.NetProfit.Equal(decimal.RequireFromString("-10")), "neta %s", got.NetProfit)
}

func TestSummary_VentaAnuladaNoSuma(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	ctx := context.Background()

	puc := purchaseuc.NewUseCase(store, store.Purchases(), store.Suppliers())
	_, err := puc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: decimal.RequireFromString("30")}},
	})
	require.NoError(t, err)

	suc := saleuc.NewUseCase(store, store.Sales(), store.Products())
	sale, err := suc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
	_, err = suc.Cancel(ctx, companyID, userID, sale.ID)
	require.NoError(t, err)

	uc := NewUseCase(store.Reports(), store.Expenses(), store.Suppliers(), nil)
	got, err := uc.Summary(ctx, companyID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, got.Revenue.IsZero(), "revenue %s", got.Revenue)
	assert.True(t, got.CostOfGoods.IsZero())
}

func TestSummary_RangoInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Reports(), store.Expenses(), store.Suppliers(), nil)
	now := time.Now()
	_, err := uc.Summary(context.Background(), companyID, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconcileSupplier_Identidad(t *testing.T) {
	store := memory.NewStore()
	seedCatalog(t, store)
	ctx := context.Background()

	puc := purchaseuc.NewUseCase(store, store.Purchases(), store.Suppliers())
	inv, err := puc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 20, UnitPrice: decimal.RequireFromString("30")}},
		PaidAmount: decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	uc := NewUseCase(store.Reports(), store.Expenses(), store.Suppliers(), nil)
	rec, err := uc.ReconcileSupplier(ctx, companyID, "prov1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.Balance.Equal(decimal.RequireFromString("300")))

	_, err = puc.Settle(ctx, companyID, inv.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)

	rec, err = uc.ReconcileSupplier(ctx, companyID, "prov1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.Balance.IsZero())
}
