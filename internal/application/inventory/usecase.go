// Package inventory expone las lecturas de existencias: stock actual,
// historial de movimientos y productos bajo su umbral de alerta.
package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/reports"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

const lowStockTTL = 30 * time.Second

// UseCase casos de uso de inventario (solo lectura).
type UseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	cache     reports.Cache
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(products repository.ProductRepository, movements repository.MovementRepository, cache reports.Cache) *UseCase {
	return &UseCase{products: products, movements: movements, cache: cache}
}

// CurrentStock devuelve las existencias vigentes de un producto.
func (uc *UseCase) CurrentStock(ctx context.Context, companyID, productID string) (*dto.StockResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return &dto.StockResponse{ProductID: p.ID, Quantity: p.Quantity}, nil
}

// MovementHistory lista movimientos del más reciente al más antiguo. La
// paginación por limit/offset es reanudable reconsultando.
func (uc *UseCase) MovementHistory(ctx context.Context, companyID, productID string, refKind entity.ReferenceKind, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	if refKind != "" && !refKind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movements.List(ctx, repository.MovementFilter{
		CompanyID: companyID,
		ProductID: productID,
		RefKind:   refKind,
		From:      from,
		To:        to,
	}, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Direction: string(m.Direction),
			Quantity:  m.Quantity,
			RefKind:   string(m.RefKind),
			RefID:     m.RefID,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return out, nil
}

// LowStock lista los productos en o por debajo de su umbral de alerta.
func (uc *UseCase) LowStock(ctx context.Context, companyID string) ([]*dto.LowStockProductDTO, error) {
	key := "inventory:lowstock:" + companyID
	if uc.cache != nil {
		var cached []*dto.LowStockProductDTO
		if ok, err := uc.cache.Get(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}
	products, err := uc.products.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LowStockProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, &dto.LowStockProductDTO{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Quantity:      p.Quantity,
			MinStockAlert: p.MinStockAlert,
		})
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, out, lowStockTTL)
	}
	return out, nil
}
