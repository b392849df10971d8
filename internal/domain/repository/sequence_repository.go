package repository

import "context"

// Nombres de consecutivos por empresa.
const (
	SeqSales     = "sales"     // numeración de ventas (FV)
	SeqPurchases = "purchases" // numeración de facturas de compra (FC)
)

// SequenceRepository asigna consecutivos monótonos por empresa y tipo de
// documento. Next se invoca dentro de la transacción del documento: la fila
// del consecutivo queda bloqueada hasta el commit, serializando emisiones
// concurrentes; el índice único sobre el número de factura es el respaldo
// ante cualquier colisión al insertar.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, kind string) (int64, error)
}
