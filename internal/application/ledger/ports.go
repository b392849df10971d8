package ledger

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción. TxRunner los
// construye sobre la tx y los pasa al callback; fuera de ese callback no
// deben usarse.
type Repos struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Sales     repository.SaleRepository
	Purchases repository.PurchaseRepository
	Suppliers repository.SupplierRepository
	Returns   repository.ReturnRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn retorna nil, Rollback si no.
// Es la unidad de atomicidad de todo el núcleo: venta, compra, devolución y
// cada movimiento de stock ocurren completos o no ocurren.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
