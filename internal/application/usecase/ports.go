package usecase

import (
	"context"

	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

// PurgeRunner ejecuta el borrado físico de un lote y sus unidades dentro de una
// transacción de BD, pasando repositorios atados a esa tx. Borrar el lote sin
// sus unidades violaría la FK batch_items.batch_id.
type PurgeRunner interface {
	RunPurge(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		itemRepo repository.BatchItemRepository,
	) error) error
}

// StockInvalidator descarta el resumen de stock cacheado de un lote.
// Lo implementa el agregador de stock; las escrituras de unidades lo invocan.
type StockInvalidator interface {
	Invalidate(ctx context.Context, batchID string)
}
