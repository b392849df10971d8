package repository

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// PurchaseRepository acceso a facturas de compra y sus items. De la cabecera
// solo mutan PaidAmount/Balance (vía UpdatePayment, siempre bajo GetForUpdate).
type PurchaseRepository interface {
	Create(ctx context.Context, inv *entity.PurchaseInvoice) error
	CreateItem(ctx context.Context, it *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.PurchaseItem, error)
	UpdatePayment(ctx context.Context, inv *entity.PurchaseInvoice) error
	ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error)
}
