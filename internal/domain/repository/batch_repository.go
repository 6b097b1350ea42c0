package repository

import (
	"context"

	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch (DIP).
// La eliminación física (lote inactivo + sus unidades) va por el TxRunner.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	List(categoryID string, includeInactive bool, limit, offset int) ([]*entity.Batch, error)
	Deactivate(id string) error
	// Delete borra físicamente la fila del lote. Solo debe invocarse dentro de
	// la transacción de purga, después de borrar sus unidades.
	Delete(id string) error
	// MaxCodeLike devuelve el código lexicográficamente mayor que coincide con
	// pattern (LIKE), o "" si no hay ninguno. Lo usa el asignador de códigos.
	MaxCodeLike(ctx context.Context, pattern string) (string, error)
}
