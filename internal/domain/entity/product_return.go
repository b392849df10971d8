package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
)

// Tipos de devolución.
type ReturnType string

const (
	ReturnCustomer ReturnType = "customer" // cliente devuelve mercancía vendida
	ReturnSupplier ReturnType = "supplier" // se devuelve mercancía al proveedor
)

// Valid indica si el tipo de devolución es conocido.
func (t ReturnType) Valid() bool {
	return t == ReturnCustomer || t == ReturnSupplier
}

// Estados de una devolución: pending es inicial; approved y rejected son
// terminales y mutuamente excluyentes. Solo hay una transición posible
// fuera de pending.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
	ReturnRejected ReturnStatus = "rejected"
)

// ProductReturn es una solicitud de devolución. El stock solo se reintegra
// al aprobarla (exactamente un movimiento return); rechazarla no tiene
// efecto sobre existencias.
type ProductReturn struct {
	ID        string
	CompanyID string
	Type      ReturnType
	SaleID    string // solo para devoluciones de cliente: venta origen
	ProductID string
	Quantity  int64
	Amount    decimal.Decimal // valor a reconocer por la devolución
	Status    ReturnStatus
	Reason    string
	DecidedBy string
	DecidedAt *time.Time
	CreatedBy string
	CreatedAt time.Time
}

// Approve transiciona pending -> approved. Cualquier otro origen devuelve
// ErrInvalidTransition; el caso approved -> approved lo trata el caso de uso
// como no-op para no acreditar stock dos veces.
func (r *ProductReturn) Approve(by string, at time.Time) error {
	if r.Status != ReturnPending {
		return domain.ErrInvalidTransition
	}
	r.Status = ReturnApproved
	r.DecidedBy = by
	r.DecidedAt = &at
	return nil
}

// Reject transiciona pending -> rejected (terminal, sin efecto en stock).
func (r *ProductReturn) Reject(by string, at time.Time) error {
	if r.Status != ReturnPending {
		return domain.ErrInvalidTransition
	}
	r.Status = ReturnRejected
	r.DecidedBy = by
	r.DecidedAt = &at
	return nil
}
