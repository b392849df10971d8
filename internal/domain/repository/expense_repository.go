package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// ExpenseRepository acceso a gastos operativos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	ListByRange(ctx context.Context, companyID string, from, to time.Time, limit, offset int) ([]*entity.Expense, error)
	SumByRange(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
}
