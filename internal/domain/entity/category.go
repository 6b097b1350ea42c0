package entity

import "time"

// Category representa una clasificación de lotes. Attributes lista los nombres
// de campos opcionales que los formularios muestran para lotes de esta categoría.
type Category struct {
	ID         string
	Name       string
	Attributes []string // nombres de atributos opcionales; puede ser nil
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
