package repository

import "context"

// StockRepository puerto de solo lectura para el conteo de unidades por lote.
// La implementación delega en la función SQL get_batch_total_stock(batch_id).
type StockRepository interface {
	TotalStock(ctx context.Context, batchID string) (int64, error)
}
