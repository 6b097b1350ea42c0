// Package stock contiene el agregador de stock por lote: combina la función de
// conteo del lado del servidor con el escaneo de ubicaciones de las unidades.
package stock

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/tu-usuario/inventario-lotes/internal/application/dto"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// Aggregator calcula el resumen de stock de un lote bajo demanda.
//
// Política fail-open: el resumen alimenta datos de visualización no críticos,
// así que las fallas de cada sub-consulta se absorben con su valor identidad
// (0, conjunto vacío) y se loguean como warning, nunca se propagan. Un batchID
// inexistente produce un resumen en cero, no un error.
type Aggregator struct {
	stockRepo    repository.StockRepository
	itemRepo     repository.BatchItemRepository
	locationRepo repository.LocationRepository
	cache        SummaryCache // puede ser nil (sin caché)
	ttl          time.Duration
	log          *logger.Logger
}

// NewAggregator construye el agregador. cache nil desactiva el cacheo.
func NewAggregator(
	stockRepo repository.StockRepository,
	itemRepo repository.BatchItemRepository,
	locationRepo repository.LocationRepository,
	cache SummaryCache,
	ttl time.Duration,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{
		stockRepo:    stockRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		cache:        cache,
		ttl:          ttl,
		log:          log,
	}
}

// ComputeBatchStock devuelve {total de unidades, conjunto de nombres de
// ubicación} del lote. El conteo y el escaneo de ubicaciones son independientes
// y se lanzan en paralelo; la resolución de nombres depende del resultado
// deduplicado y va después.
func (a *Aggregator) ComputeBatchStock(ctx context.Context, batchID string) *dto.BatchStockDTO {
	if cached := a.fromCache(ctx, batchID); cached != nil {
		return cached
	}

	// ── Goroutines para paralelizar las 2 consultas independientes ────────────
	type countResult struct {
		total int64
		err   error
	}
	type locationsResult struct {
		ids []string
		err error
	}

	countCh := make(chan countResult, 1)
	locCh := make(chan locationsResult, 1)

	go func() {
		total, err := a.stockRepo.TotalStock(ctx, batchID)
		countCh <- countResult{total, err}
	}()
	go func() {
		ids, err := a.itemRepo.ListLocationIDs(ctx, batchID)
		locCh <- locationsResult{ids, err}
	}()

	count := <-countCh
	locations := <-locCh

	out := &dto.BatchStockDTO{LocationNames: []string{}}

	if count.err != nil {
		a.log.Warn().Err(count.err).Str("batch_id", batchID).
			Msg("falló get_batch_total_stock; el total queda en 0")
	} else {
		out.TotalStock = count.total
	}

	if locations.err != nil {
		a.log.Warn().Err(locations.err).Str("batch_id", batchID).
			Msg("falló el escaneo de ubicaciones; el conjunto queda vacío")
		a.toCache(ctx, batchID, out)
		return out
	}

	ids := dedupe(locations.ids)
	if len(ids) == 0 {
		a.toCache(ctx, batchID, out)
		return out
	}

	// ids que no resuelven a nombre se omiten en silencio del conjunto.
	names, err := a.locationRepo.NamesByIDs(ctx, ids)
	if err != nil {
		a.log.Warn().Err(err).Str("batch_id", batchID).
			Msg("falló la resolución de nombres de ubicación; el conjunto queda vacío")
	} else {
		sort.Strings(names)
		out.LocationNames = names
	}

	a.toCache(ctx, batchID, out)
	return out
}

// Invalidate descarta el resumen cacheado del lote. Implementa
// usecase.StockInvalidator; las escrituras de unidades lo invocan.
func (a *Aggregator) Invalidate(ctx context.Context, batchID string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, cacheKey(batchID)); err != nil {
		a.log.Warn().Err(err).Str("batch_id", batchID).
			Msg("no se pudo invalidar el resumen de stock cacheado")
	}
}

func (a *Aggregator) fromCache(ctx context.Context, batchID string) *dto.BatchStockDTO {
	if a.cache == nil {
		return nil
	}
	raw, ok, err := a.cache.Get(ctx, cacheKey(batchID))
	if err != nil {
		a.log.Warn().Err(err).Str("batch_id", batchID).Msg("fallo de lectura del caché de stock")
		return nil
	}
	if !ok {
		return nil
	}
	var out dto.BatchStockDTO
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.log.Warn().Err(err).Str("batch_id", batchID).Msg("resumen cacheado corrupto; se recalcula")
		return nil
	}
	return &out
}

func (a *Aggregator) toCache(ctx context.Context, batchID string, summary *dto.BatchStockDTO) {
	if a.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, cacheKey(batchID), string(raw), a.ttl); err != nil {
		a.log.Warn().Err(err).Str("batch_id", batchID).Msg("fallo de escritura del caché de stock")
	}
}

func cacheKey(batchID string) string {
	return "stock:batch:" + batchID
}

// dedupe aplica semántica de conjunto preservando el orden de primera aparición.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
