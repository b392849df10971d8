package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier es un proveedor. Balance es la deuda acumulada pendiente,
// mantenida incrementalmente: debe ser igual a la suma de Balance de sus
// facturas de compra en todo momento (la identidad se verifica con
// reports.ReconcileSupplier). Solo mutan el campo la recepción de compras
// y la liquidación de deuda, dentro de sus transacciones.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Email     string
	Address   string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
