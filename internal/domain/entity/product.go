package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Quantity solo se modifica a través del libro de movimientos (ledger.ApplyMovement);
// ningún otro camino puede tocarla. Siempre debe poder reconstruirse sumando
// los movimientos firmados desde la creación del producto.
type Product struct {
	ID            string
	CompanyID     string
	CategoryID    string
	SKU           string // código único por empresa
	Name          string
	PurchasePrice decimal.Decimal // costo de compra vigente
	SalePrice     decimal.Decimal // precio de venta vigente
	Quantity      int64           // existencias, nunca negativa
	MinStockAlert int64           // umbral para la lista de stock bajo
	ExpiryDate    *time.Time      // opcional (perecederos)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinStock indica si el producto está en o por debajo de su umbral de
// alerta. Umbral cero significa sin alerta configurada.
func (p *Product) BelowMinStock() bool {
	return p.MinStockAlert > 0 && p.Quantity <= p.MinStockAlert
}
