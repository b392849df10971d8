package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest línea de venta solicitada.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CheckoutRequest solicitud de venta. Discount se interpreta según
// DiscountType ("fixed" o "percentage").
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	Discount      decimal.Decimal       `json:"discount"`
	DiscountType  string                `json:"discount_type"`
	PaymentMethod string                `json:"payment_method"`
}

// SaleItemResponse línea de venta con el precio congelado.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con totales e items.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	Status         string             `json:"status"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	DiscountType   string             `json:"discount_type"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items"`
}
