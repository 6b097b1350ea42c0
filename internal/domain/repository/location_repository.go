package repository

import (
	"context"

	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
	// NamesByIDs resuelve ids a nombres con una sola consulta (WHERE id = ANY).
	// Los ids que no existen simplemente no aparecen en el resultado.
	NamesByIDs(ctx context.Context, ids []string) ([]string, error)
}
