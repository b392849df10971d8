package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, company_id, supplier_id, invoice_number, total,
	paid_amount, balance, date, created_by, created_at, updated_at`

// Create inserta la cabecera de la factura de compra.
func (r *PurchaseRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (id, company_id, supplier_id,
			invoice_number, total, paid_amount, balance, date, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.CompanyID, inv.SupplierID,
		inv.InvoiceNumber, inv.Total, inv.PaidAmount, inv.Balance, inv.Date,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la factura.
func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, invoice_id, product_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, it.ID, it.InvoiceID, it.ProductID,
		it.Quantity, it.Price, it.Subtotal)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase invoice")
}

// GetForUpdate obtiene la factura bloqueando su fila.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase invoice for update")
}

// GetItems devuelve las líneas de la factura.
func (r *PurchaseRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, price, subtotal
		FROM purchase_items WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity,
			&it.Price, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// UpdatePayment persiste paid_amount y balance tras un abono.
func (r *PurchaseRepo) UpdatePayment(ctx context.Context, inv *entity.PurchaseInvoice) error {
	query := `
		UPDATE purchase_invoices
		SET paid_amount = $2, balance = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, inv.ID, inv.PaidAmount, inv.Balance, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySupplier devuelve las facturas de un proveedor, más recientes primero.
func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_invoices WHERE supplier_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseInvoice
	for rows.Next() {
		var inv entity.PurchaseInvoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.SupplierID,
			&inv.InvoiceNumber, &inv.Total, &inv.PaidAmount, &inv.Balance,
			&inv.Date, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func (r *PurchaseRepo) scanOne(row pgx.Row, op string) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.SupplierID,
		&inv.InvoiceNumber, &inv.Total, &inv.PaidAmount, &inv.Balance,
		&inv.Date, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}
