package entity

import "time"

// MovementDirection dirección de un movimiento de stock.
type MovementDirection string

const (
	MovementIn     MovementDirection = "in"     // entrada (compra)
	MovementOut    MovementDirection = "out"    // salida (venta)
	MovementReturn MovementDirection = "return" // reingreso (devolución o anulación)
)

// Valid indica si la dirección es una de las tres conocidas.
func (d MovementDirection) Valid() bool {
	return d == MovementIn || d == MovementOut || d == MovementReturn
}

// Sign devuelve el signo con el que la dirección afecta las existencias.
func (d MovementDirection) Sign() int64 {
	if d == MovementOut {
		return -1
	}
	return 1
}

// ReferenceKind tipo de documento que originó un movimiento.
type ReferenceKind string

const (
	RefSale     ReferenceKind = "sale"
	RefPurchase ReferenceKind = "purchase"
	RefReturn   ReferenceKind = "return"
)

// Valid indica si el tipo de referencia es uno de los tres conocidos.
func (k ReferenceKind) Valid() bool {
	return k == RefSale || k == RefPurchase || k == RefReturn
}

// Movement es un registro del libro de movimientos: una fila inmutable por
// cada cambio de existencias de un producto. Solo se inserta; nunca se
// actualiza ni se borra.
type Movement struct {
	ID        string
	CompanyID string
	ProductID string
	Direction MovementDirection
	Quantity  int64 // siempre positiva; el signo lo aporta Direction
	RefKind   ReferenceKind
	RefID     string // venta, factura de compra o devolución que lo originó
	Note      string
	CreatedAt time.Time
	CreatedBy string // UserID
}

// Signed devuelve la cantidad con signo según la dirección.
func (m *Movement) Signed() int64 {
	return m.Direction.Sign() * m.Quantity
}
