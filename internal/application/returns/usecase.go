// Package returns adjudica devoluciones de producto. Una devolución nace
// pendiente y el stock solo se reintegra al aprobarla, con exactamente un
// movimiento de tipo return.
package returns

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/ledger"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// UseCase casos de uso de devoluciones.
type UseCase struct {
	txRunner ledger.TxRunner
	returns  repository.ReturnRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, returns repository.ReturnRepository) *UseCase {
	return &UseCase{txRunner: txRunner, returns: returns}
}

// CreateReturn registra una solicitud de devolución en estado pending. Para
// devoluciones de cliente el producto debe pertenecer a la venta referida y
// la cantidad no puede exceder la vendida. Con AutoApprove la aprobación
// ocurre en la misma transacción.
func (uc *UseCase) CreateReturn(ctx context.Context, companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	typ := entity.ReturnType(in.Type)
	if !typ.Valid() || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if typ == entity.ReturnCustomer && in.SaleID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	ret := &entity.ProductReturn{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      typ,
		SaleID:    in.SaleID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Amount:    in.Amount,
		Status:    entity.ReturnPending,
		Reason:    in.Reason,
		CreatedBy: userID,
		CreatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		if typ == entity.ReturnCustomer {
			if err := validateAgainstSale(ctx, r, companyID, ret); err != nil {
				return err
			}
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			return err
		}
		if in.AutoApprove {
			return approveLocked(ctx, r, ret, userID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// Transition aplica una decisión sobre una devolución pendiente. Aprobar
// una devolución ya aprobada es un no-op (protege contra reintentos del
// cliente HTTP sin acreditar stock dos veces); cualquier otra transición
// ilegal falla con ErrInvalidTransition.
func (uc *UseCase) Transition(ctx context.Context, companyID, userID, returnID string, status entity.ReturnStatus) (*dto.ReturnResponse, error) {
	if status != entity.ReturnApproved && status != entity.ReturnRejected {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var ret *entity.ProductReturn

	err := uc.txRunner.Run(ctx, func(r ledger.Repos) error {
		var err error
		ret, err = r.Returns.GetForUpdate(ctx, returnID)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrNotFound
		}
		if ret.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if status == entity.ReturnApproved {
			if ret.Status == entity.ReturnApproved {
				return nil // ya aprobada: reintento inocuo
			}
			return approveLocked(ctx, r, ret, userID, now)
		}
		if err := ret.Reject(userID, now); err != nil {
			return err
		}
		return r.Returns.UpdateStatus(ctx, ret)
	})
	if err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// Get devuelve una devolución por id.
func (uc *UseCase) Get(ctx context.Context, companyID, returnID string) (*dto.ReturnResponse, error) {
	ret, err := uc.returns.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	if ret.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toReturnResponse(ret), nil
}

// List devuelve devoluciones de la empresa, opcionalmente filtradas por
// estado, más recientes primero.
func (uc *UseCase) List(ctx context.Context, companyID string, status entity.ReturnStatus, limit, offset int) ([]*dto.ReturnResponse, error) {
	rets, err := uc.returns.List(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReturnResponse, 0, len(rets))
	for _, ret := range rets {
		out = append(out, toReturnResponse(ret))
	}
	return out, nil
}

// validateAgainstSale verifica que la devolución de cliente refiera un
// producto efectivamente vendido en la venta origen y no exceda la cantidad
// vendida.
func validateAgainstSale(ctx context.Context, r ledger.Repos, companyID string, ret *entity.ProductReturn) error {
	sale, err := r.Sales.GetByID(ctx, ret.SaleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return domain.ErrForbidden
	}
	items, err := r.Sales.GetItems(ctx, ret.SaleID)
	if err != nil {
		return err
	}
	var sold int64
	for _, it := range items {
		if it.ProductID == ret.ProductID {
			sold += it.Quantity
		}
	}
	if sold == 0 || ret.Quantity > sold {
		return &domain.InvalidReturnQuantityError{
			ProductID: ret.ProductID,
			Sold:      sold,
			Requested: ret.Quantity,
		}
	}
	return nil
}

// approveLocked aprueba una devolución ya cargada bajo la transacción en
// curso y acredita el stock con un único movimiento return.
func approveLocked(ctx context.Context, r ledger.Repos, ret *entity.ProductReturn, userID string, now time.Time) error {
	if err := ret.Approve(userID, now); err != nil {
		return err
	}
	if err := r.Returns.UpdateStatus(ctx, ret); err != nil {
		return err
	}
	_, err := ledger.ApplyMovement(ctx, r, ledger.MovementInput{
		CompanyID: ret.CompanyID,
		ProductID: ret.ProductID,
		Direction: entity.MovementReturn,
		Quantity:  ret.Quantity,
		RefKind:   entity.RefReturn,
		RefID:     ret.ID,
		Note:      "devolución aprobada",
		UserID:    userID,
		Now:       now,
	})
	return err
}

func toReturnResponse(ret *entity.ProductReturn) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:        ret.ID,
		Type:      string(ret.Type),
		SaleID:    ret.SaleID,
		ProductID: ret.ProductID,
		Quantity:  ret.Quantity,
		Amount:    ret.Amount,
		Status:    string(ret.Status),
		Reason:    ret.Reason,
		DecidedBy: ret.DecidedBy,
		DecidedAt: ret.DecidedAt,
		CreatedAt: ret.CreatedAt,
	}
}
