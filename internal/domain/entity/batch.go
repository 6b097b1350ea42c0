package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote: un grupo nombrado de existencias idénticas.
// Code es único a nivel global y lo genera el asignador de códigos.
// La "eliminación" de un lote activo es lógica (IsActive = false); un lote
// ya inactivo se elimina físicamente junto con sus unidades.
type Batch struct {
	ID          string
	Name        string
	Code        string // único: <prefijo>-<YYYYMMDD>-<secuencia>
	CategoryID  string
	MinStock    int
	Price       *decimal.Decimal // opcional
	IsActive    bool
	Description string
	Attributes  json.RawMessage // campos extra definidos por la categoría
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
