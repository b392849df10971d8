package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInvalidTransition     = errors.New("transición de estado inválida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidReturnQuantity = errors.New("cantidad de devolución inválida")
	ErrOverpayment           = errors.New("el pago excede el saldo")
)

// InsufficientStockError indica que una salida dejaría el stock negativo.
// Lleva el disponible y lo solicitado para que el caller pueda informarlo.
type InsufficientStockError struct {
	ProductID string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidReturnQuantityError indica que una devolución de cliente pide más
// unidades de las vendidas en la factura origen (o un producto que no figura en ella).
type InvalidReturnQuantityError struct {
	ProductID string
	Sold      int64
	Requested int64
}

func (e *InvalidReturnQuantityError) Error() string {
	return fmt.Sprintf("devolución inválida para producto %s: vendidas %d, solicitadas %d",
		e.ProductID, e.Sold, e.Requested)
}

func (e *InvalidReturnQuantityError) Is(target error) bool {
	return target == ErrInvalidReturnQuantity
}

// Etapas en las que puede detectarse un sobrepago.
const (
	OverpaymentAtIntake     = "intake"     // anticipo mayor al total de la factura de compra
	OverpaymentOnSettlement = "settlement" // abono mayor al saldo pendiente
)

// OverpaymentError indica un pago que excede lo adeudado, en la etapa Stage.
type OverpaymentError struct {
	Stage   string
	Balance decimal.Decimal // lo adeudado al momento del pago
	Amount  decimal.Decimal // lo que se intentó pagar
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("sobrepago (%s): saldo %s, pago %s", e.Stage, e.Balance, e.Amount)
}

func (e *OverpaymentError) Is(target error) bool {
	return target == ErrOverpayment
}
