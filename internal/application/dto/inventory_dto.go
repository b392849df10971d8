package dto

import "time"

// MovementResponse fila del historial de movimientos.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	RefKind   string    `json:"ref_kind"`
	RefID     string    `json:"ref_id"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// StockResponse existencias actuales de un producto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// LowStockProductDTO producto en o por debajo de su umbral de alerta.
type LowStockProductDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Quantity      int64  `json:"quantity"`
	MinStockAlert int64  `json:"min_stock_alert"`
}
