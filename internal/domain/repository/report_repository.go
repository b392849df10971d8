package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportRepository agregados de solo lectura para reportes. Ninguna de sus
// consultas muta estado.
type ReportRepository interface {
	// Revenue suma los totales de ventas completadas en el rango.
	Revenue(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	// CostOfGoods suma cantidad vendida * precio de compra VIGENTE del
	// producto. Aproximación asumida: no congela el costo al momento de la
	// venta, así que la deriva de precios de compra distorsiona márgenes
	// históricos.
	CostOfGoods(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	// ReturnsDeduction suma los montos de devoluciones aprobadas en el rango.
	ReturnsDeduction(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	// SupplierBalanceFromInvoices deriva la deuda de un proveedor sumando los
	// saldos de sus facturas; sirve para verificar la identidad con el campo
	// incremental suppliers.balance.
	SupplierBalanceFromInvoices(ctx context.Context, supplierID string) (decimal.Decimal, error)
}
