package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const (
	companyID = "empresa-1"
	userID    = "usuario-1"
)

func seedProduct(t *testing.T, store *memory.Store, id string, qty int64, salePrice string) {
	t.Helper()
	now := time.Now()
	err := store.Products().Create(context.Background(), &entity.Product{
		ID:            id,
		CompanyID:     companyID,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		PurchasePrice: decimal.RequireFromString("30"),
		SalePrice:     decimal.RequireFromString(salePrice),
		Quantity:      qty,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
}

func TestCheckout_DescuentaStockYNumera(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, "50")
	uc := NewUseCase(store, store.Sales(), store.Products())

	sale, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, "FV-000001", sale.InvoiceNumber)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("200")), "total %s", sale.Total)
	assert.Equal(t, string(entity.SaleCompleted), sale.Status)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Price.Equal(decimal.RequireFromString("50")))

	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.Quantity)

	// Reconciliación: la suma firmada del libro coincide con el stock.
	sum, err := store.Movements().SumSignedByProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(-4), sum)
}

func TestCheckout_StockInsuficiente(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 3, "50")
	uc := NewUseCase(store, store.Sales(), store.Products())

	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, int64(3), stockErr.Available)
	assert.Equal(t, int64(4), stockErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCheckout_TodoONada(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, "50")
	seedProduct(t, store, "p2", 1, "20")
	uc := NewUseCase(store, store.Sales(), store.Products())

	// La segunda línea falla por stock: la primera no debe quedar aplicada.
	_, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 5},
		},
		PaymentMethod: "efectivo",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p1.Quantity)

	movs, err := store.Movements().List(context.Background(), repository.MovementFilter{CompanyID: companyID}, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	sales, err := store.Sales().List(context.Background(), companyID, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCheckout_DescuentoPorcentaje(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, "100")
	uc := NewUseCase(store, store.Sales(), store.Products())

	sale, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 2}},
		Discount:      decimal.RequireFromString("10"),
		DiscountType:  string(entity.DiscountPercentage),
		PaymentMethod: "tarjeta",
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("200")))
	assert.True(t, sale.DiscountAmount.Equal(decimal.RequireFromString("20")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("180")))
}

func TestCheckout_NumeracionConsecutiva(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 100, "50")
	uc := NewUseCase(store, store.Sales(), store.Products())

	for i, want := range []string{"FV-000001", "FV-000002", "FV-000003"} {
		sale, err := uc.Checkout(context.Background(), companyID, userID, dto.CheckoutRequest{
			Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod: "efectivo",
		})
		require.NoError(t, err, "venta %d", i+1)
		assert.Equal(t, want, sale.InvoiceNumber)
	}
}

func TestCancel_ReintegraStock(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, "50")
	uc := NewUseCase(store, store.Sales(), store.Products())
	ctx := context.Background()

	sale, err := uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	cancelled, err := uc.Cancel(ctx, companyID, userID, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleCancelled), cancelled.Status)

	// Simetría: el reingreso deja el stock exactamente como antes de vender.
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Quantity)

	sum, err := store.Movements().SumSignedByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestCancel_SegundaVezFalla(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, "50")
	uc := NewUseCase(store, store.Sales(), store.Products())
	ctx := context.Background()

	sale, err := uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, companyID, userID, sale.ID)
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, companyID, userID, sale.ID)
	require.True(t, errors.Is(err, domain.ErrInvalidTransition))

	// El doble reintegro no ocurrió.
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Quantity)
}

func TestCheckout_ValidaEntrada(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store, store.Sales(), store.Products())
	ctx := context.Background()

	_, err := uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{PaymentMethod: "efectivo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 0}},
		PaymentMethod: "efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
