package returns

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	saleuc "github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const (
	companyID = "empresa-1"
	userID    = "usuario-1"
)

// seedSale deja una venta de 4 unidades de p1 registrada y devuelve su id.
func seedSale(t *testing.T, store *memory.Store) string {
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
		Quantity:      10,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	uc := saleuc.NewUseCase(store, store.Sales(), store.Products())
	sale, err := uc.Checkout(ctx, companyID, userID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 4}},
		PaymentMethod: "efectivo",
	})
	require.NoError(t, err)
	return sale.ID
}

func TestCreateReturn_PendienteSinStock(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())
	ctx := context.Background()

	ret, err := uc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p1",
		SaleID:    saleID,
		Quantity:  2,
		Amount:    decimal.RequireFromString("100"),
		Reason:    "empaque dañado",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReturnPending), ret.Status)

	// Pendiente no acredita stock.
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.Quantity)
}

func TestCreateReturn_ExcedeLoVendido(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())

	_, err := uc.CreateReturn(context.Background(), companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p1",
		SaleID:    saleID,
		Quantity:  5,
		Amount:    decimal.RequireFromString("250"),
	})
	require.Error(t, err)

	var qtyErr *domain.InvalidReturnQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, int64(4), qtyErr.Sold)
	assert.Equal(t, int64(5), qtyErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInvalidReturnQuantity)
}

func TestCreateReturn_ProductoAjenoALaVenta(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "p2", CompanyID: companyID, SKU: "SKU-p2", Name: "Producto p2",
		PurchasePrice: decimal.RequireFromString("10"),
		SalePrice:     decimal.RequireFromString("15"),
		CreatedAt:     now, UpdatedAt: now,
	}))

	_, err := uc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p2",
		SaleID:    saleID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReturnQuantity)
}

func TestTransition_AprobarAcreditaUnaVez(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())
	ctx := context.Background()

	ret, err := uc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p1",
		SaleID:    saleID,
		Quantity:  2,
		Amount:    decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	approved, err := uc.Transition(ctx, companyID, userID, ret.ID, entity.ReturnApproved)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReturnApproved), approved.Status)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.Quantity)

	// Reaprobar es un no-op: el stock no se acredita dos veces.
	again, err := uc.Transition(ctx, companyID, userID, ret.ID, entity.ReturnApproved)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReturnApproved), again.Status)

	p, err = store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.Quantity)
}

func TestTransition_RechazoTerminal(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())
	ctx := context.Background()

	ret, err := uc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p1",
		SaleID:    saleID,
		Quantity:  2,
	})
	require.NoError(t, err)

	rejected, err := uc.Transition(ctx, companyID, userID, ret.ID, entity.ReturnRejected)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReturnRejected), rejected.Status)

	// Sin efecto en existencias.
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.Quantity)

	// Rechazada no admite más transiciones, ni siquiera repetir el rechazo.
	_, err = uc.Transition(ctx, companyID, userID, ret.ID, entity.ReturnRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Transition(ctx, companyID, userID, ret.ID, entity.ReturnApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreateReturn_AutoAprobada(t *testing.T) {
	store := memory.NewStore()
	saleID := seedSale(t, store)
	uc := NewUseCase(store, store.Returns())
	ctx := context.Background()

	ret, err := uc.CreateReturn(ctx, companyID, userID, dto.CreateReturnRequest{
		Type:        string(entity.ReturnCustomer),
		ProductID:   "p1",
		SaleID:      saleID,
		Quantity:    3,
		Amount:      decimal.RequireFromString("150"),
		AutoApprove: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReturnApproved), ret.Status)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.Quantity)

	sum, err := store.Movements().SumSignedByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), sum)
}

func TestCreateReturn_ClienteSinVentaFalla(t *testing.T) {
	store := memory.NewStore()
	seedSale(t, store)
	uc := NewUseCase(store, store.Returns())

	_, err := uc.CreateReturn(context.Background(), companyID, userID, dto.CreateReturnRequest{
		Type:      string(entity.ReturnCustomer),
		ProductID: "p1",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
