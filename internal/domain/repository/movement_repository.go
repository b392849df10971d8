package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos. Los campos vacíos
// no filtran.
type MovementFilter struct {
	CompanyID string
	ProductID string
	RefKind   entity.ReferenceKind
	From      *time.Time
	To        *time.Time
}

// MovementRepository acceso al libro de movimientos. Solo inserta y lee:
// las filas son inmutables por diseño del libro (append-only).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.Movement, error)
	// SumSignedByProduct suma las cantidades firmadas de un producto desde su
	// creación; debe coincidir con products.quantity (reconciliación).
	SumSignedByProduct(ctx context.Context, productID string) (int64, error)
}
