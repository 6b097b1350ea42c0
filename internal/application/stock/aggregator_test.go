package stock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// Los fakes embeben la interfaz del puerto: solo se implementan los métodos que
// el agregador usa; cualquier otro haría panic y delataría un acoplamiento nuevo.

type fakeStockRepo struct {
	mu    sync.Mutex
	total int64
	err   error
	calls int
}

func (f *fakeStockRepo) TotalStock(context.Context, string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.total, f.err
}

type fakeItemRepo struct {
	repository.BatchItemRepository
	mu    sync.Mutex
	ids   []string
	err   error
	calls int
}

func (f *fakeItemRepo) ListLocationIDs(context.Context, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.ids, f.err
}

type fakeLocationRepo struct {
	repository.LocationRepository
	names   map[string]string
	err     error
	askedBy [][]string
}

func (f *fakeLocationRepo) NamesByIDs(_ context.Context, ids []string) ([]string, error) {
	f.askedBy = append(f.askedBy, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	deletes int
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.deletes++
	return nil
}

type aggDeps struct {
	stock *fakeStockRepo
	items *fakeItemRepo
	locs  *fakeLocationRepo
	cache *fakeCache
}

func newTestAggregator(d aggDeps) *Aggregator {
	var c SummaryCache
	if d.cache != nil {
		c = d.cache
	}
	return NewAggregator(d.stock, d.items, d.locs, c, 15*time.Second, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeBatchStock
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeBatchStock_TotalYConjuntoDeUbicaciones(t *testing.T) {
	locs := &fakeLocationRepo{names: map[string]string{
		"L1": "Bodega Norte",
		"L2": "Anaquel 3",
	}}
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 5},
		items: &fakeItemRepo{ids: []string{"L1", "L2", "L1"}},
		locs:  locs,
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Equal(t, int64(5), out.TotalStock)
	assert.Equal(t, []string{"Anaquel 3", "Bodega Norte"}, out.LocationNames,
		"conjunto deduplicado y ordenado alfabéticamente")
	require.Len(t, locs.askedBy, 1)
	assert.Equal(t, []string{"L1", "L2"}, locs.askedBy[0],
		"la resolución de nombres recibe los ids ya deduplicados")
}

func TestComputeBatchStock_EsIdempotente(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 2},
		items: &fakeItemRepo{ids: []string{"L1"}},
		locs:  &fakeLocationRepo{names: map[string]string{"L1": "Bodega Norte"}},
	})

	a := agg.ComputeBatchStock(context.Background(), "batch-1")
	b := agg.ComputeBatchStock(context.Background(), "batch-1")

	assert.Equal(t, a, b)
}

func TestComputeBatchStock_LoteSinUnidades(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 0},
		items: &fakeItemRepo{ids: nil},
		locs:  &fakeLocationRepo{},
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Zero(t, out.TotalStock)
	assert.NotNil(t, out.LocationNames, "conjunto vacío, nunca null en el JSON")
	assert.Empty(t, out.LocationNames)
}

func TestComputeBatchStock_FallaDelConteoDejaTotalEnCero(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{err: errors.New("función caída")},
		items: &fakeItemRepo{ids: []string{"L1", "L2", "L1"}},
		locs: &fakeLocationRepo{names: map[string]string{
			"L1": "Bodega Norte",
			"L2": "Anaquel 3",
		}},
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out, "fail-open: la falla de una sub-consulta no se propaga")
	assert.Zero(t, out.TotalStock)
	assert.Equal(t, []string{"Anaquel 3", "Bodega Norte"}, out.LocationNames,
		"las ubicaciones se resuelven aunque el conteo haya fallado")
}

func TestComputeBatchStock_FallaDelEscaneoDejaConjuntoVacio(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 7},
		items: &fakeItemRepo{err: errors.New("timeout")},
		locs:  &fakeLocationRepo{},
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Equal(t, int64(7), out.TotalStock, "el total sobrevive a la falla del escaneo")
	assert.Empty(t, out.LocationNames)
}

func TestComputeBatchStock_FallaDeNombresDejaConjuntoVacio(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 3},
		items: &fakeItemRepo{ids: []string{"L1"}},
		locs:  &fakeLocationRepo{err: errors.New("timeout")},
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Equal(t, int64(3), out.TotalStock)
	assert.Empty(t, out.LocationNames)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeBatchStock_SegundaLecturaSaleDelCache(t *testing.T) {
	stockRepo := &fakeStockRepo{total: 4}
	itemRepo := &fakeItemRepo{ids: []string{"L1"}}
	cache := newFakeCache()
	agg := newTestAggregator(aggDeps{
		stock: stockRepo,
		items: itemRepo,
		locs:  &fakeLocationRepo{names: map[string]string{"L1": "Bodega Norte"}},
		cache: cache,
	})

	first := agg.ComputeBatchStock(context.Background(), "batch-1")
	second := agg.ComputeBatchStock(context.Background(), "batch-1")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stockRepo.calls, "la segunda lectura no debe tocar el almacén")
	assert.Equal(t, 1, itemRepo.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestInvalidate_DescartaElResumenCacheado(t *testing.T) {
	stockRepo := &fakeStockRepo{total: 4}
	cache := newFakeCache()
	agg := newTestAggregator(aggDeps{
		stock: stockRepo,
		items: &fakeItemRepo{ids: nil},
		locs:  &fakeLocationRepo{},
		cache: cache,
	})

	agg.ComputeBatchStock(context.Background(), "batch-1")
	agg.Invalidate(context.Background(), "batch-1")
	agg.ComputeBatchStock(context.Background(), "batch-1")

	assert.Equal(t, 1, cache.deletes)
	assert.Equal(t, 2, stockRepo.calls, "tras invalidar se recalcula contra el almacén")
}

func TestComputeBatchStock_FallaDelCacheNoImpideCalcular(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis caído")
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 9},
		items: &fakeItemRepo{ids: nil},
		locs:  &fakeLocationRepo{},
		cache: cache,
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Equal(t, int64(9), out.TotalStock)
}

func TestComputeBatchStock_SinCacheFunciona(t *testing.T) {
	agg := newTestAggregator(aggDeps{
		stock: &fakeStockRepo{total: 1},
		items: &fakeItemRepo{ids: nil},
		locs:  &fakeLocationRepo{},
	})

	out := agg.ComputeBatchStock(context.Background(), "batch-1")

	require.NotNil(t, out)
	assert.Equal(t, int64(1), out.TotalStock)
}
