package repository

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// ReturnRepository acceso a devoluciones. UpdateStatus persiste únicamente
// la decisión (status, decided_by, decided_at); el resto es inmutable.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.ProductReturn) error
	GetByID(ctx context.Context, id string) (*entity.ProductReturn, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error)
	UpdateStatus(ctx context.Context, r *entity.ProductReturn) error
	List(ctx context.Context, companyID string, status entity.ReturnStatus, limit, offset int) ([]*entity.ProductReturn, error)
}
