package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest datos para crear un lote. El código lo genera el servidor.
type CreateBatchRequest struct {
	Name        string           `json:"name"`
	CategoryID  string           `json:"category_id"`
	MinStock    int              `json:"min_stock"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description string           `json:"description,omitempty"`
	Attributes  json.RawMessage  `json:"attributes,omitempty"`
	CodePrefix  string           `json:"code_prefix,omitempty"` // vacío = prefijo por defecto
}

// CreateBatchesBulkRequest crea count lotes idénticos con códigos consecutivos.
type CreateBatchesBulkRequest struct {
	Count int `json:"count"`
	CreateBatchRequest
}

// UpdateBatchRequest reemplazo parcial de campos (nil = sin cambio).
type UpdateBatchRequest struct {
	Name        *string          `json:"name,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	Description *string          `json:"description,omitempty"`
	Attributes  json.RawMessage  `json:"attributes,omitempty"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	CategoryID  string           `json:"category_id"`
	MinStock    int              `json:"min_stock"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    bool             `json:"is_active"`
	Description string           `json:"description,omitempty"`
	Attributes  json.RawMessage  `json:"attributes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BulkFailure falla individual dentro de una operación masiva.
type BulkFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// CreateBatchesBulkResponse resultado de creación masiva de lotes.
type CreateBatchesBulkResponse struct {
	Created []BatchResponse `json:"created"`
	Failed  []BulkFailure   `json:"failed,omitempty"`
}

// DeleteBatchResponse indica qué tipo de borrado se aplicó.
type DeleteBatchResponse struct {
	ID     string `json:"id"`
	Purged bool   `json:"purged"` // true = borrado físico (lote ya inactivo)
}
