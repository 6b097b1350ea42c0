package entity

import "time"

// Location representa un punto de almacenamiento referenciado por BatchItem.
// Nunca se elimina en cascada automáticamente; la integridad referencial es
// responsabilidad de la capa de persistencia.
type Location struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
