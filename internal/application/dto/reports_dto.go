package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitLossResponse resumen de pérdidas y ganancias de un período.
// CostOfGoods usa el precio de compra vigente de cada producto, no el del
// momento de la venta (aproximación documentada).
type ProfitLossResponse struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Revenue          decimal.Decimal `json:"revenue"`
	CostOfGoods      decimal.Decimal `json:"cost_of_goods"`
	ReturnsDeduction decimal.Decimal `json:"returns_deduction"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

// SupplierReconciliationResponse compara la deuda incremental del proveedor
// contra la derivada de sus facturas; Consistent indica si coinciden.
type SupplierReconciliationResponse struct {
	SupplierID   string          `json:"supplier_id"`
	Balance      decimal.Decimal `json:"balance"`
	FromInvoices decimal.Decimal `json:"from_invoices"`
	Consistent   bool            `json:"consistent"`
}
