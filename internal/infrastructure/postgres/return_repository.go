package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, company_id, type, sale_id, product_id, quantity,
	amount, status, reason, decided_by, decided_at, created_by, created_at`

// Create inserta una devolución.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	query := `
		INSERT INTO product_returns (id, company_id, type, sale_id, product_id,
			quantity, amount, status, reason, decided_by, decided_at,
			created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, ret.ID, ret.CompanyID, string(ret.Type),
		ret.SaleID, ret.ProductID, ret.Quantity, ret.Amount,
		string(ret.Status), ret.Reason, ret.DecidedBy, ret.DecidedAt,
		ret.CreatedBy, ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución; (nil, nil) si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ProductReturn, error) {
	query := `SELECT ` + returnColumns + ` FROM product_returns WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get return")
}

// GetForUpdate obtiene la devolución bloqueando su fila.
func (r *ReturnRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error) {
	query := `SELECT ` + returnColumns + ` FROM product_returns WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get return for update")
}

// UpdateStatus persiste la decisión sobre la devolución.
func (r *ReturnRepo) UpdateStatus(ctx context.Context, ret *entity.ProductReturn) error {
	query := `
		UPDATE product_returns
		SET status = $2, decided_by = NULLIF($3, ''), decided_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, ret.ID, string(ret.Status), ret.DecidedBy, ret.DecidedAt)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve devoluciones de la empresa, opcionalmente por estado, más
// recientes primero.
func (r *ReturnRepo) List(ctx context.Context, companyID string, status entity.ReturnStatus, limit, offset int) ([]*entity.ProductReturn, error) {
	query := `
		SELECT ` + returnColumns + `
		FROM product_returns
		WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, string(status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductReturn
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func (r *ReturnRepo) scanOne(row pgx.Row, op string) (*entity.ProductReturn, error) {
	ret, err := scanReturn(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ret, nil
}

func scanReturn(row pgx.Row) (*entity.ProductReturn, error) {
	var ret entity.ProductReturn
	var typ, status string
	var saleID, decidedBy *string
	err := row.Scan(&ret.ID, &ret.CompanyID, &typ, &saleID, &ret.ProductID,
		&ret.Quantity, &ret.Amount, &status, &ret.Reason, &decidedBy,
		&ret.DecidedAt, &ret.CreatedBy, &ret.CreatedAt)
	if err != nil {
		return nil, err
	}
	ret.Type = entity.ReturnType(typ)
	ret.Status = entity.ReturnStatus(status)
	if saleID != nil {
		ret.SaleID = *saleID
	}
	if decidedBy != nil {
		ret.DecidedBy = *decidedBy
	}
	return &ret, nil
}
