package repository

import (
	"context"
	"time"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// ProductRepository acceso a productos. GetForUpdate bloquea la fila
// (SELECT ... FOR UPDATE) y solo tiene sentido dentro de una transacción.
// UpdateQuantity es de uso exclusivo del ledger; nadie más escribe Quantity.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64, at time.Time) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, companyID string) ([]*entity.Product, error)
}
