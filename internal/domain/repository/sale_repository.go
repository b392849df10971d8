package repository

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// SaleRepository acceso a ventas y sus items. Los items son inmutables
// después de creados; de la cabecera solo muta Status (vía UpdateStatus).
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	CreateItem(ctx context.Context, it *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	UpdateStatus(ctx context.Context, s *entity.Sale) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
}
