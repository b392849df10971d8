package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Revenue suma los totales de ventas completadas del período.
func (r *ReportRepo) Revenue(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE company_id = $1 AND status = 'completed'
			AND created_at >= $2 AND created_at <= $3`
	return r.scanSum(ctx, "revenue", query, companyID, from, to)
}

// CostOfGoods suma cantidad vendida por el precio de compra vigente del
// producto. No congela el costo al momento de la venta: la deriva de
// precios de compra distorsiona márgenes históricos.
func (r *ReportRepo) CostOfGoods(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity * p.purchase_price), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.company_id = $1 AND s.status = 'completed'
			AND s.created_at >= $2 AND s.created_at <= $3`
	return r.scanSum(ctx, "cost of goods", query, companyID, from, to)
}

// ReturnsDeduction suma los montos de devoluciones aprobadas en el período.
func (r *ReportRepo) ReturnsDeduction(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM product_returns
		WHERE company_id = $1 AND status = 'approved'
			AND decided_at >= $2 AND decided_at <= $3`
	return r.scanSum(ctx, "returns deduction", query, companyID, from, to)
}

// SupplierBalanceFromInvoices deriva la deuda del proveedor sumando los
// saldos de sus facturas.
func (r *ReportRepo) SupplierBalanceFromInvoices(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM purchase_invoices WHERE supplier_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, supplierID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("supplier balance from invoices: %w", err)
	}
	return sum, nil
}

func (r *ReportRepo) scanSum(ctx context.Context, op, query string, args ...any) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}
