package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto operativo; entra en el cálculo de utilidad neta.
type Expense struct {
	ID          string
	CompanyID   string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
