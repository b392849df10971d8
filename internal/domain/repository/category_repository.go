package repository

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// CategoryRepository acceso a categorías (CRUD plano).
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, companyID string) ([]*entity.Category, error)
}
