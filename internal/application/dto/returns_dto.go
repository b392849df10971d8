package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest solicitud de devolución. SaleID es obligatorio para
// type=customer. AutoApprove aprueba en la misma transacción.
type CreateReturnRequest struct {
	Type        string          `json:"type"` // customer | supplier
	ProductID   string          `json:"product_id"`
	SaleID      string          `json:"sale_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	AutoApprove bool            `json:"auto_approve"`
}

// ReturnResponse devolución con su estado.
type ReturnResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	SaleID    string          `json:"sale_id,omitempty"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Reason    string          `json:"reason"`
	DecidedBy string          `json:"decided_by,omitempty"`
	DecidedAt *time.Time      `json:"decided_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
