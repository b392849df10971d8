package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos por empresa y tipo de documento sobre
// PostgreSQL. El UPDATE del upsert bloquea la fila hasta el commit de la
// tx del documento, serializando emisiones concurrentes.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next asigna el siguiente consecutivo para (companyID, kind).
func (r *SequenceRepo) Next(ctx context.Context, companyID, kind string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (company_id, kind, next_value)
		VALUES ($1, $2, 2)
		ON CONFLICT (company_id, kind)
		DO UPDATE SET next_value = invoice_sequences.next_value + 1
		RETURNING next_value - 1`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s/%s: %w", companyID, kind, err)
	}
	return n, nil
}
