package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL. La
// tabla solo recibe inserts; no hay UPDATE ni DELETE en este adaptador.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento del libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, direction,
			quantity, ref_kind, ref_id, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, m.ID, m.CompanyID, m.ProductID,
		string(m.Direction), m.Quantity, string(m.RefKind), m.RefID, m.Note,
		m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve movimientos del más reciente al más antiguo, con filtros
// opcionales (campos vacíos no filtran).
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, company_id, product_id, direction, quantity, ref_kind,
			ref_id, note, created_at, created_by
		FROM stock_movements
		WHERE company_id = $1`
	args := []any{f.CompanyID}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += " AND product_id = $" + strconv.Itoa(len(args))
	}
	if f.RefKind != "" {
		args = append(args, string(f.RefKind))
		query += " AND ref_kind = $" + strconv.Itoa(len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += " AND created_at >= $" + strconv.Itoa(len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += " AND created_at <= $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var direction, refKind string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &direction,
			&m.Quantity, &refKind, &m.RefID, &m.Note, &m.CreatedAt,
			&m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Direction = entity.MovementDirection(direction)
		m.RefKind = entity.ReferenceKind(refKind)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumSignedByProduct suma las cantidades firmadas del producto desde su
// creación; debe coincidir con products.quantity.
func (r *MovementRepo) SumSignedByProduct(ctx context.Context, productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'out' THEN -quantity ELSE quantity END), 0)
		FROM stock_movements WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}
