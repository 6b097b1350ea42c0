package dto

// BatchStockDTO resumen de stock de un lote, calculado bajo demanda (nunca persistido).
// LocationNames tiene semántica de conjunto; se devuelve ordenado para un JSON estable.
type BatchStockDTO struct {
	TotalStock    int64    `json:"total_stock"`
	LocationNames []string `json:"location_names"`
}
