package dto

import "time"

// CreateItemRequest datos para registrar una unidad de lote.
type CreateItemRequest struct {
	BatchID      string  `json:"batch_id"`
	SerialNumber *string `json:"serial_number,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	LocationID   string  `json:"location_id"`
	Status       string  `json:"status,omitempty"` // vacío = available
	Notes        *string `json:"notes,omitempty"`
}

// CreateItemsBulkRequest registra quantity unidades idénticas de un lote.
// Los inserts son independientes (sin transacción); las fallas se reportan por índice.
type CreateItemsBulkRequest struct {
	BatchID    string `json:"batch_id"`
	LocationID string `json:"location_id"`
	SKU        string `json:"sku,omitempty"`
	Status     string `json:"status,omitempty"`
	Quantity   int    `json:"quantity"`
}

// UpdateItemRequest reemplazo parcial de campos de una unidad (nil = sin cambio).
type UpdateItemRequest struct {
	SerialNumber *string `json:"serial_number,omitempty"`
	SKU          *string `json:"sku,omitempty"`
	LocationID   *string `json:"location_id,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// BatchItemResponse representación HTTP de una unidad.
type BatchItemResponse struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batch_id"`
	SerialNumber *string   `json:"serial_number,omitempty"`
	SKU          string    `json:"sku,omitempty"`
	LocationID   string    `json:"location_id"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BatchItemListResponse listado paginado de unidades.
type BatchItemListResponse struct {
	Items []BatchItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateItemsBulkResponse resultado de creación masiva de unidades.
type CreateItemsBulkResponse struct {
	Created []BatchItemResponse `json:"created"`
	Failed  []BulkFailure       `json:"failed,omitempty"`
}
