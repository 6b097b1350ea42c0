package dto

import "time"

// CreateCategoryRequest datos para crear una categoría.
type CreateCategoryRequest struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes,omitempty"` // nombres de campos extra para lotes
}

// UpdateCategoryRequest reemplazo parcial (nil = sin cambio).
type UpdateCategoryRequest struct {
	Name       *string  `json:"name,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Attributes []string  `json:"attributes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
