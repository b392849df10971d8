package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntakeItemRequest línea de una compra a proveedor.
type IntakeItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// IntakeRequest solicitud de recepción de compra. PaidAmount es el anticipo
// opcional (0 si se omite); no puede exceder el total.
type IntakeRequest struct {
	SupplierID string              `json:"supplier_id"`
	Date       time.Time           `json:"date"`
	Items      []IntakeItemRequest `json:"items"`
	PaidAmount decimal.Decimal     `json:"paid_amount"`
}

// SettleRequest abono a una factura de compra.
type SettleRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseItemResponse línea de factura de compra.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseInvoiceResponse factura de compra con estado de pago.
type PurchaseInvoiceResponse struct {
	ID            string                 `json:"id"`
	SupplierID    string                 `json:"supplier_id"`
	InvoiceNumber string                 `json:"invoice_number"`
	Total         decimal.Decimal        `json:"total"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	Balance       decimal.Decimal        `json:"balance"`
	Date          time.Time              `json:"date"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
}
