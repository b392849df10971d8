package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// SupplierRepository acceso a proveedores. AdjustBalance suma delta (puede
// ser negativo) al saldo de deuda; los casos de uso lo invocan siempre
// después de GetForUpdate y dentro de su transacción.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error)
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal, at time.Time) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
}
