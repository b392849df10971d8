package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// Cancelación de venta: completed -> cancelled es legal; cancelled es terminal.
func TestSale_Cancel_DesdeCompleted(t *testing.T) {
	s := &entity.Sale{Status: entity.SaleCompleted}
	require.NoError(t, s.Cancel(time.Now()))
	assert.Equal(t, entity.SaleCancelled, s.Status)
}

func TestSale_Cancel_SegundaVezFalla(t *testing.T) {
	s := &entity.Sale{Status: entity.SaleCompleted}
	require.NoError(t, s.Cancel(time.Now()))

	err := s.Cancel(time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"cancelar dos veces debe fallar, no ser no-op")
}

// Descuentos: fixed resta el monto tal cual, percentage calcula sobre el subtotal.
func TestDiscountAmount(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	fixed := entity.DiscountAmount(subtotal, decimal.NewFromInt(30), entity.DiscountFixed)
	assert.True(t, fixed.Equal(decimal.NewFromInt(30)))

	pct := entity.DiscountAmount(subtotal, decimal.NewFromInt(10), entity.DiscountPercentage)
	assert.True(t, pct.Equal(decimal.NewFromInt(20)), "10%% de 200 debe ser 20, fue %s", pct)
}

// Devoluciones: pending es inicial; approved y rejected son terminales.
func TestProductReturn_Transiciones(t *testing.T) {
	now := time.Now()

	r := &entity.ProductReturn{Status: entity.ReturnPending}
	require.NoError(t, r.Approve("u1", now))
	assert.Equal(t, entity.ReturnApproved, r.Status)
	assert.Equal(t, "u1", r.DecidedBy)
	require.NotNil(t, r.DecidedAt)

	// approved es terminal en la entidad; la idempotencia del aprobar dos
	// veces la resuelve el caso de uso, no la transición.
	assert.ErrorIs(t, r.Approve("u1", now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Reject("u1", now), domain.ErrInvalidTransition)

	r2 := &entity.ProductReturn{Status: entity.ReturnPending}
	require.NoError(t, r2.Reject("u2", now))
	assert.Equal(t, entity.ReturnRejected, r2.Status)
	assert.ErrorIs(t, r2.Approve("u2", now), domain.ErrInvalidTransition)
}

// Abonos a factura de compra: nunca más que el saldo, nunca montos no positivos.
func TestPurchaseInvoice_ApplyPayment(t *testing.T) {
	inv := &entity.PurchaseInvoice{
		Total:      decimal.NewFromInt(600),
		PaidAmount: decimal.NewFromInt(300),
		Balance:    decimal.NewFromInt(300),
	}

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(200), time.Now()))
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(100)))

	err := inv.ApplyPayment(decimal.NewFromInt(150), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	var over *domain.OverpaymentError
	require.True(t, errors.As(err, &over))
	assert.Equal(t, domain.OverpaymentOnSettlement, over.Stage)
	// El saldo no debe haberse tocado tras el rechazo
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(100)))

	assert.ErrorIs(t, inv.ApplyPayment(decimal.Zero, time.Now()), domain.ErrInvalidInput)
}

// Direcciones de movimiento: el signo determina cómo afectan existencias.
func TestMovement_Signed(t *testing.T) {
	out := &entity.Movement{Direction: entity.MovementOut, Quantity: 4}
	assert.Equal(t, int64(-4), out.Signed())

	in := &entity.Movement{Direction: entity.MovementIn, Quantity: 20}
	assert.Equal(t, int64(20), in.Signed())

	ret := &entity.Movement{Direction: entity.MovementReturn, Quantity: 3}
	assert.Equal(t, int64(3), ret.Signed())

	assert.False(t, entity.MovementDirection("adjust").Valid())
}

// Umbral de alerta: cero significa sin alerta, aun con stock agotado.
func TestProduct_BelowMinStock(t *testing.T) {
	sinAlerta := &entity.Product{Quantity: 0, MinStockAlert: 0}
	assert.False(t, sinAlerta.BelowMinStock())

	enUmbral := &entity.Product{Quantity: 5, MinStockAlert: 5}
	assert.True(t, enUmbral.BelowMinStock())

	porDebajo := &entity.Product{Quantity: 2, MinStockAlert: 5}
	assert.True(t, porDebajo.BelowMinStock())

	porEncima := &entity.Product{Quantity: 8, MinStockAlert: 5}
	assert.False(t, porEncima.BelowMinStock())
}
