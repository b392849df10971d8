// Package ledger implementa el libro de movimientos: el único camino legal
// para cambiar las existencias de un producto. Cada ajuste bloquea la fila
// del producto (SELECT ... FOR UPDATE), verifica disponibilidad, actualiza
// la cantidad y agrega exactamente una fila inmutable al libro, todo dentro
// de la transacción del caller.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// MovementInput entrada para ApplyMovement.
type MovementInput struct {
	CompanyID string
	ProductID string
	Direction entity.MovementDirection
	Quantity  int64 // siempre positiva
	RefKind   entity.ReferenceKind
	RefID     string
	Note      string
	UserID    string
	Now       time.Time
}

// ApplyMovement ajusta las existencias del producto y agrega el movimiento
// al libro. Debe invocarse dentro de una transacción (los repos de r vienen
// del TxRunner): la verificación de disponibilidad y el decremento son un
// solo read-modify-write bajo el bloqueo de la fila del producto. Si la
// salida dejaría el stock negativo retorna InsufficientStockError y el
// caller debe abortar la transacción completa.
func ApplyMovement(ctx context.Context, r Repos, in MovementInput) (*entity.Movement, error) {
	if !in.Direction.Valid() || !in.RefKind.Valid() || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := r.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	newQty := product.Quantity + in.Direction.Sign()*in.Quantity
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Available: product.Quantity,
			Requested: in.Quantity,
		}
	}

	if err := r.Products.UpdateQuantity(ctx, in.ProductID, newQty, in.Now); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		RefKind:   in.RefKind,
		RefID:     in.RefID,
		Note:      in.Note,
		CreatedAt: in.Now,
		CreatedBy: in.UserID,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
