package entity

import "time"

// Estados válidos de una unidad de lote.
const (
	ItemStatusAvailable   = "available"
	ItemStatusInUse       = "in_use"
	ItemStatusMaintenance = "maintenance"
	ItemStatusRetired     = "retired"
)

// ValidItemStatus indica si s es uno de los estados del enum.
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusAvailable, ItemStatusInUse, ItemStatusMaintenance, ItemStatusRetired:
		return true
	}
	return false
}

// BatchItem representa una unidad física rastreable: pertenece a exactamente
// un lote y está en exactamente una ubicación. Se elimina físicamente (sin soft-delete).
type BatchItem struct {
	ID           string
	BatchID      string
	SerialNumber *string // opcional
	SKU          string  // puede estar vacío
	LocationID   string
	Status       string // available, in_use, maintenance, retired
	Notes        *string // opcional
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
