package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
)

// PurchaseInvoice es una factura de compra a proveedor. Balance siempre es
// Total - PaidAmount, nunca negativo, y solo decrece vía ApplyPayment
// (liquidación de deuda); nunca aumenta después de creada.
type PurchaseInvoice struct {
	ID            string
	CompanyID     string
	SupplierID    string
	InvoiceNumber string // consecutivo único por empresa (FC-000001)
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	Balance       decimal.Decimal
	Date          time.Time
	CreatedBy     string // UserID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyPayment abona amount a la factura. Rechaza montos no positivos y
// pagos que excedan el saldo (OverpaymentError etapa settlement).
func (i *PurchaseInvoice) ApplyPayment(amount decimal.Decimal, at time.Time) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if amount.GreaterThan(i.Balance) {
		return &domain.OverpaymentError{
			Stage:   domain.OverpaymentOnSettlement,
			Balance: i.Balance,
			Amount:  amount,
		}
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Balance = i.Balance.Sub(amount)
	i.UpdatedAt = at
	return nil
}

// PurchaseItem es una línea de factura de compra con el costo congelado.
type PurchaseItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal // costo unitario pactado con el proveedor
	Subtotal  decimal.Decimal // Price * Quantity
}
