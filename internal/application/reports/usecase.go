// Package reports agrega cifras de pérdidas y ganancias y concilia la deuda
// de proveedores. Todo es de solo lectura; nada aquí muta estado.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Cache almacén efímero de respuestas de reporte. Un valor nil desactiva
// el cacheo sin ramas especiales en los handlers.
type Cache interface {
	// Get deserializa en dest si la clave existe; devuelve false si no.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// TTL corto: el resumen tolera datos con segundos de atraso.
const summaryTTL = 60 * time.Second

// UseCase casos de uso de reportes.
type UseCase struct {
	reports   repository.ReportRepository
	expenses  repository.ExpenseRepository
	suppliers repository.SupplierRepository
	cache     Cache
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(reports repository.ReportRepository, expenses repository.ExpenseRepository, suppliers repository.SupplierRepository, cache Cache) *UseCase {
	return &UseCase{reports: reports, expenses: expenses, suppliers: suppliers, cache: cache}
}

// Summary arma el estado de pérdidas y ganancias del período:
// grossProfit = revenue - costOfGoods - returnsDeduction y
// netProfit = grossProfit - expenses. El costo de ventas usa el precio de
// compra vigente de cada producto, no el del momento de la venta.
func (uc *UseCase) Summary(ctx context.Context, companyID string, from, to time.Time) (*dto.ProfitLossResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	key := fmt.Sprintf("reports:pl:%s:%d:%d", companyID, from.Unix(), to.Unix())
	if uc.cache != nil {
		var cached dto.ProfitLossResponse
		if ok, err := uc.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	revenue, err := uc.reports.Revenue(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	cogs, err := uc.reports.CostOfGoods(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	deduction, err := uc.reports.ReturnsDeduction(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenses.SumByRange(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	gross := revenue.Sub(cogs).Sub(deduction)
	resp := &dto.ProfitLossResponse{
		From:             from,
		To:               to,
		Revenue:          revenue,
		CostOfGoods:      cogs,
		ReturnsDeduction: deduction,
		GrossProfit:      gross,
		Expenses:         expenses,
		NetProfit:        gross.Sub(expenses),
	}
	if uc.cache != nil {
		// Fallar el cacheo no falla el reporte.
		_ = uc.cache.Set(ctx, key, resp, summaryTTL)
	}
	return resp, nil
}

// ReconcileSupplier compara la deuda incremental del proveedor contra la
// derivada de los saldos de sus facturas. Una discrepancia señala un bug de
// escritura, no algo que el reporte deba corregir.
func (uc *UseCase) ReconcileSupplier(ctx context.Context, companyID, supplierID string) (*dto.SupplierReconciliationResponse, error) {
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
	derived, err := uc.reports.SupplierBalanceFromInvoices(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return &dto.SupplierReconciliationResponse{
		SupplierID:   supplierID,
		Balance:      supplier.Balance,
		FromInvoices: derived,
		Consistent:   supplier.Balance.Equal(derived),
	}, nil
}
