package stock

import (
	"context"
	"time"
)

// SummaryCache puerto de caché de corta vida para resúmenes de stock
// serializados. La implementación Redis vive en infrastructure/cache; los
// tests usan un fake en memoria. Un caché nil desactiva el cacheo.
type SummaryCache interface {
	// Get devuelve (valor, true, nil) en hit y ("", false, nil) en miss.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
