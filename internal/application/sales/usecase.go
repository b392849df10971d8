// Package sales implementa el checkout y la anulación de ventas sobre el
// libro de movimientos: validación de disponibilidad, congelamiento de
// precios, descuento, consecutivo de factura y descuento de stock en una
// sola transacción.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/ledger"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner ledger.TxRunner
	sales    repository.SaleRepository
	products repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, sales repository.SaleRepository, products repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, sales: sales, products: products}
}

// Checkout registra una venta completa o nada: si alguna línea no puede
// satisfacerse con el stock disponible, toda la operación se revierte
// (InsufficientStockError con disponible y solicitado). El precio de venta
// se congela por línea dentro de la transacción, bajo el mismo bloqueo de
// fila que protege el descuento de stock.
//
// El núcleo no valida el descuento contra totales negativos: un total
// negativo se acepta tal cual. El intake HTTP rechaza descuentos negativos
// y porcentajes mayores a 100 antes de llegar aquí.
func (uc *UseCase) Checkout(ctx context.Context, companyID, userID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	discountType := entity.DiscountType(in.DiscountType)
	if in.DiscountType == "" {
		discountType = entity.DiscountFixed
	}
	if !discountType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var items []*entity.SaleItem

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		// Congelar precios bajo el bloqueo de fila de cada producto.
		subtotal := decimal.Zero
		items = items[:0]
		for _, line := range in.Items {
			product, err := r.Products.GetForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return domain.ErrForbidden
			}
			lineSubtotal := product.SalePrice.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.SalePrice,
				Subtotal:  lineSubtotal,
			})
			subtotal = subtotal.Add(lineSubtotal)
		}

		discountAmount := entity.DiscountAmount(subtotal, in.Discount, discountType)
		total := subtotal.Sub(discountAmount)

		// Consecutivo por empresa; la fila del consecutivo queda bloqueada
		// hasta el commit, y el índice único respalda ante colisiones.
		seq, err := r.Sequences.Next(ctx, companyID, repository.SeqSales)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:             saleID,
			CompanyID:      companyID,
			InvoiceNumber:  fmt.Sprintf("FV-%06d", seq),
			Status:         entity.SaleCompleted,
			Subtotal:       subtotal,
			Discount:       in.Discount,
			DiscountType:   discountType,
			DiscountAmount: discountAmount,
			Total:          total,
			PaymentMethod:  in.PaymentMethod,
			CreatedBy:      userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := r.Sales.CreateItem(ctx, it); err != nil {
				return err
			}
		}

		// Salida de stock por línea, referenciando la venta. Si alguna línea
		// falla por stock, el rollback deja todo como estaba.
		for _, it := range items {
			if _, err := ledger.ApplyMovement(ctx, r, ledger.MovementInput{
				CompanyID: companyID,
				ProductID: it.ProductID,
				Direction: entity.MovementOut,
				Quantity:  it.Quantity,
				RefKind:   entity.RefSale,
				RefID:     saleID,
				Note:      "venta " + sale.InvoiceNumber,
				UserID:    userID,
				Now:       now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// Cancel anula una venta completada: reintegra el stock de cada línea con
// movimientos return referenciando la venta y marca la venta cancelled.
// Cancelled es terminal: un segundo intento devuelve ErrInvalidTransition.
func (uc *UseCase) Cancel(ctx context.Context, companyID, userID, saleID string) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var sale *entity.Sale
	var items []*entity.SaleItem

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		var err error
		sale, err = r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := sale.Cancel(now); err != nil {
			return err
		}
		items, err = r.Sales.GetItems(ctx, saleID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if _, err := ledger.ApplyMovement(ctx, r, ledger.MovementInput{
				CompanyID: companyID,
				ProductID: it.ProductID,
				Direction: entity.MovementReturn,
				Quantity:  it.Quantity,
				RefKind:   entity.RefSale,
				RefID:     saleID,
				Note:      "anulación venta " + sale.InvoiceNumber,
				UserID:    userID,
				Now:       now,
			}); err != nil {
				return err
			}
		}
		return r.Sales.UpdateStatus(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// Get devuelve una venta con sus items.
func (uc *UseCase) Get(ctx context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.sales.GetItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// List devuelve ventas de la empresa, más recientes primero.
func (uc *UseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.sales.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s, nil))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		Status:         string(s.Status),
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		DiscountType:   string(s.DiscountType),
		DiscountAmount: s.DiscountAmount,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		Items:          make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
