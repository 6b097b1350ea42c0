package repository

import (
	"context"

	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
)

// BatchItemRepository define el puerto de persistencia para BatchItem (DIP).
type BatchItemRepository interface {
	Create(item *entity.BatchItem) error
	GetByID(id string) (*entity.BatchItem, error)
	ListByBatch(batchID string, limit, offset int) ([]*entity.BatchItem, error)
	Update(item *entity.BatchItem) error
	Delete(id string) error
	DeleteByBatch(batchID string) error
	// ListLocationIDs proyecta solo location_id de las unidades del lote
	// (con duplicados; el agregador deduplica).
	ListLocationIDs(ctx context.Context, batchID string) ([]string, error)
}
