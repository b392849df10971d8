package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	purchaseuc "github.com/jhoicas/comercio-api/internal/application/purchases"
	saleuc "github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const (
	companyID = "empresa-1"
	userID    = "usuario-1"
)

func seedActivity(t *testing.T, store *memory.Store) {
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
		MinStockAlert: 5,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{
		ID: "prov1", CompanyID: companyID, Name: "Proveedor Uno",
		Balance: decimal.Zero, CreatedAt: now, UpdatedAt: now,
	}))

	puc := purchaseuc.NewUseCase(store, store.Purchases(), store.Suppliers())
	_, err := puc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: decimal.RequireFromString("30")}},
	})
	require.NoError(t, err)

	suc := saleuc.NewUseCase(store, store.Sales(), store.Products())
	_, err = suc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 6}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
}

func TestCurrentStock(t *testing.T) {
	store := memory.NewStore()
	seedActivity(t, store)
	uc := NewUseCase(store.Products(), store.Movements(), nil)

	got, err := uc.CurrentStock(context.Background(), companyID, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	_, err = uc.CurrentStock(context.Background(), companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementHistory_MasRecientePrimero(t *testing.T) {
	store := memory.NewStore()
	seedActivity(t, store)
	uc := NewUseCase(store.Products(), store.Movements(), nil)

	movs, err := uc.MovementHistory(context.Background(), companyID, "p1", "", nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, string(entity.MovementOut), movs[0].Direction)
	assert.Equal(t, string(entity.MovementIn), movs[1].Direction)
}

func TestMovementHistory_FiltraPorReferencia(t *testing.T) {
	store := memory.NewStore()
	seedActivity(t, store)
	uc := NewUseCase(store.Products(), store.Movements(), nil)
	ctx := context.Background()

	movs, err := uc.MovementHistory(ctx, companyID, "p1", entity.RefPurchase, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, string(entity.MovementIn), movs[0].Direction)

	_, err = uc.MovementHistory(ctx, companyID, "p1", entity.ReferenceKind("otro"), nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_Paginacion(t *testing.T) {
	store := memory.NewStore()
	seedActivity(t, store)
	uc := NewUseCase(store.Products(), store.Movements(), nil)
	ctx := context.Background()

	page1, err := uc.MovementHistory(ctx, companyID, "p1", "", nil, nil, 1, 0)
	require.NoError(t, err)
	require.Len(t, page1, 1)

	page2, err := uc.MovementHistory(ctx, companyID, "p1", "", nil, nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestLowStock(t *testing.T) {
	store := memory.NewStore()
	seedActivity(t, store)
	uc := NewUseCase(store.Products(), store.Movements(), nil)

	// Producto agotado pero sin umbral configurado: no debe alertar.
	now := time.Now()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: "p2", CompanyID: companyID, SKU: "SKU-p2", Name: "Producto p2",
		PurchasePrice: decimal.Zero, SalePrice: decimal.Zero,
		MinStockAlert: 0, CreatedAt: now, UpdatedAt: now,
	}))

	// Quedan 4 con umbral 5: solo ese producto debe aparecer.
	low, err := uc.LowStock(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "p1", low[0].ProductID)
	assert.Equal(t, int64(4), low[0].Quantity)
}
