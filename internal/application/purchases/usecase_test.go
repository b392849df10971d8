package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const (
	companyID = "empresa-1"
	userID    = "usuario-1"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
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
	return store
}

func TestIntake_CreaFacturaYStock(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())
	ctx := context.Background()

	inv, err := uc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 20, UnitPrice: decimal.RequireFromString("30")}},
		PaidAmount: decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	assert.Equal(t, "FC-000001", inv.InvoiceNumber)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("600")), "total %s", inv.Total)
	assert.True(t, inv.PaidAmount.Equal(decimal.RequireFromString("300")))
	assert.True(t, inv.Balance.Equal(decimal.RequireFromString("300")))

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.Quantity)

	sum, err := store.Movements().SumSignedByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), sum)

	supplier, err := store.Suppliers().GetByID(ctx, "prov1")
	require.NoError(t, err)
	assert.True(t, supplier.Balance.Equal(decimal.RequireFromString("300")))
}

func TestIntake_AnticipoExcedeTotal(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())

	_, err := uc.Intake(context.Background(), companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("30")}},
		PaidAmount: decimal.RequireFromString("100"),
	})
	require.Error(t, err)

	var overErr *domain.OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, domain.OverpaymentAtIntake, overErr.Stage)
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	// Nada quedó escrito: ni stock ni deuda.
	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)
}

func TestSettle_AbonaFacturaYProveedor(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())
	ctx := context.Background()

	inv, err := uc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 20, UnitPrice: decimal.RequireFromString("30")}},
		PaidAmount: decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	settled, err := uc.Settle(ctx, companyID, inv.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)
	assert.True(t, settled.Balance.IsZero(), "saldo %s", settled.Balance)
	assert.True(t, settled.PaidAmount.Equal(decimal.RequireFromString("600")))

	// Identidad de deuda: balance del proveedor = Σ saldos de sus facturas.
	supplier, err := store.Suppliers().GetByID(ctx, "prov1")
	require.NoError(t, err)
	assert.True(t, supplier.Balance.IsZero(), "deuda %s", supplier.Balance)

	derived, err := store.Reports().SupplierBalanceFromInvoices(ctx, "prov1")
	require.NoError(t, err)
	assert.True(t, supplier.Balance.Equal(derived))
}

func TestSettle_ExcedeSaldo(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())
	ctx := context.Background()

	inv, err := uc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: decimal.RequireFromString("30")}},
	})
	require.NoError(t, err)

	_, err = uc.Settle(ctx, companyID, inv.ID, decimal.RequireFromString("301"))
	require.Error(t, err)

	var overErr *domain.OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, domain.OverpaymentOnSettlement, overErr.Stage)

	// El rechazo no tocó ni factura ni proveedor.
	got, err := uc.Get(ctx, companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("300")))

	supplier, err := store.Suppliers().GetByID(ctx, "prov1")
	require.NoError(t, err)
	assert.True(t, supplier.Balance.Equal(decimal.RequireFromString("300")))
}

func TestSettle_MontoInvalido(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())
	ctx := context.Background()

	inv, err := uc.Intake(ctx, companyID, userID, dto.IntakeRequest{
		SupplierID: "prov1",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("30")}},
	})
	require.NoError(t, err)

	_, err = uc.Settle(ctx, companyID, inv.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Settle(ctx, companyID, inv.ID, decimal.RequireFromString("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIntake_ProveedorInexistente(t *testing.T) {
	store := seedStore(t)
	uc := NewUseCase(store, store.Purchases(), store.Suppliers())

	_, err := uc.Intake(context.Background(), companyID, userID, dto.IntakeRequest{
		SupplierID: "no-existe",
		Items:      []dto.IntakeItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("30")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
