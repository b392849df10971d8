package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
)

// Estados de una venta. Enumeración cerrada: las transiciones ilegales se
// rechazan en los métodos, no con comparaciones de strings dispersas.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled" // terminal
)

// Tipos de descuento aplicables al total de la venta.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"      // monto fijo
	DiscountPercentage DiscountType = "percentage" // porcentaje sobre el subtotal
)

// Valid indica si el tipo de descuento es conocido.
func (t DiscountType) Valid() bool {
	return t == DiscountFixed || t == DiscountPercentage
}

// DiscountAmount calcula el monto a descontar de subtotal según el tipo.
func DiscountAmount(subtotal, discount decimal.Decimal, t DiscountType) decimal.Decimal {
	if t == DiscountPercentage {
		return subtotal.Mul(discount).Div(decimal.NewFromInt(100))
	}
	return discount
}

// Sale es una venta con sus totales congelados al momento de la transacción.
// Se crea junto con sus items y movimientos en una sola transacción; los
// items son inmutables después de creados.
type Sale struct {
	ID             string
	CompanyID      string
	InvoiceNumber  string // consecutivo único por empresa (FV-000001)
	Status         SaleStatus
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal // valor crudo del descuento (monto o porcentaje)
	DiscountType   DiscountType
	DiscountAmount decimal.Decimal // monto efectivamente descontado
	Total          decimal.Decimal
	PaymentMethod  string
	CreatedBy      string // UserID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Cancel transiciona la venta a cancelled. Solo es legal desde completed;
// cancelled es terminal, un segundo intento devuelve ErrInvalidTransition.
func (s *Sale) Cancel(at time.Time) error {
	if s.Status != SaleCompleted {
		return domain.ErrInvalidTransition
	}
	s.Status = SaleCancelled
	s.UpdatedAt = at
	return nil
}

// SaleItem es una línea de venta con el precio congelado al momento de la
// transacción: cambios posteriores del precio del producto no la afectan.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal // precio de venta al momento de la transacción
	Subtotal  decimal.Decimal // Price * Quantity
}
