// Package purchases implementa la recepción de compras a proveedor y la
// liquidación de su deuda: alta de factura con anticipo opcional, entrada
// de stock por el libro de movimientos y saldo del proveedor, todo en una
// transacción por operación.
package purchases

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

// UseCase casos de uso de compras.
type UseCase struct {
	txRunner  ledger.TxRunner
	purchases repository.PurchaseRepository
	suppliers repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, purchases repository.PurchaseRepository, suppliers repository.SupplierRepository) *UseCase {
	return &UseCase{txRunner: txRunner, purchases: purchases, suppliers: suppliers}
}

// Intake registra una compra: factura con consecutivo propio, entrada de
// stock por línea y aumento de la deuda del proveedor por el saldo. El
// anticipo no puede exceder el total (OverpaymentError etapa intake, antes
// de abrir la transacción).
func (uc *UseCase) Intake(ctx context.Context, companyID, userID string, in dto.IntakeRequest) (*dto.PurchaseInvoiceResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	paid := in.PaidAmount
	if paid.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if paid.GreaterThan(total) {
		return nil, &domain.OverpaymentError{
			Stage:   domain.OverpaymentAtIntake,
			Balance: total,
			Amount:  paid,
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	invoiceID := uuid.New().String()
	var inv *entity.PurchaseInvoice
	var items []*entity.PurchaseItem

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		supplier, err := r.Suppliers.GetForUpdate(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if supplier.CompanyID != companyID {
			return domain.ErrForbidden
		}

		seq, err := r.Sequences.Next(ctx, companyID, repository.SeqPurchases)
		if err != nil {
			return err
		}
		balance := total.Sub(paid)
		inv = &entity.PurchaseInvoice{
			ID:            invoiceID,
			CompanyID:     companyID,
			SupplierID:    in.SupplierID,
			InvoiceNumber: fmt.Sprintf("FC-%06d", seq),
			Total:         total,
			PaidAmount:    paid,
			Balance:       balance,
			Date:          date,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Purchases.Create(ctx, inv); err != nil {
			return err
		}

		items = items[:0]
		for _, line := range in.Items {
			it := &entity.PurchaseItem{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
				Subtotal:  line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)),
			}
			if err := r.Purchases.CreateItem(ctx, it); err != nil {
				return err
			}
			items = append(items, it)

			if _, err := ledger.ApplyMovement(ctx, r, ledger.MovementInput{
				CompanyID: companyID,
				ProductID: line.ProductID,
				Direction: entity.MovementIn,
				Quantity:  line.Quantity,
				RefKind:   entity.RefPurchase,
				RefID:     invoiceID,
				Note:      "compra " + inv.InvoiceNumber,
				UserID:    userID,
				Now:       now,
			}); err != nil {
				return err
			}
		}

		// La deuda del proveedor crece por el saldo de la factura (no por el
		// total): el anticipo ya quedó pagado.
		return r.Suppliers.AdjustBalance(ctx, in.SupplierID, balance, now)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// Settle abona amount a una factura de compra y baja en la misma medida la
// deuda del proveedor, bajo los bloqueos de ambas filas. El abono nunca
// puede exceder el saldo vigente de la factura.
func (uc *UseCase) Settle(ctx context.Context, companyID, invoiceID string, amount decimal.Decimal) (*dto.PurchaseInvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var inv *entity.PurchaseInvoice

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		var err error
		inv, err = r.Purchases.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if _, err := r.Suppliers.GetForUpdate(ctx, inv.SupplierID); err != nil {
			return err
		}
		if err := inv.ApplyPayment(amount, now); err != nil {
			return err
		}
		if err := r.Purchases.UpdatePayment(ctx, inv); err != nil {
			return err
		}
		return r.Suppliers.AdjustBalance(ctx, inv.SupplierID, amount.Neg(), now)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, nil), nil
}

// Get devuelve una factura de compra con sus items.
func (uc *UseCase) Get(ctx context.Context, companyID, invoiceID string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.purchases.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.purchases.GetItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListBySupplier devuelve las facturas de un proveedor, más recientes primero.
func (uc *UseCase) ListBySupplier(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*dto.PurchaseInvoiceResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	invoices, err := uc.purchases.ListBySupplier(ctx, supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.PurchaseInvoice, items []*entity.PurchaseItem) *dto.PurchaseInvoiceResponse {
	resp := &dto.PurchaseInvoiceResponse{
		ID:            inv.ID,
		SupplierID:    inv.SupplierID,
		InvoiceNumber: inv.InvoiceNumber,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance,
		Date:          inv.Date,
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
