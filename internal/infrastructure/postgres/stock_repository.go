package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo puerto de conteo de unidades sobre la función SQL get_batch_total_stock.
// El conteo vive del lado del servidor para que la agregación no dependa de
// traer las filas al proceso.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de conteo.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// TotalStock invoca get_batch_total_stock(batch_id) y devuelve el total de unidades.
func (r *StockRepo) TotalStock(ctx context.Context, batchID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(ctx, `SELECT get_batch_total_stock($1)`, batchID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("get_batch_total_stock: %w", err)
	}
	return total, nil
}
