package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

// fakeBatchRepo implementación en memoria de repository.BatchRepository.
// MaxCodeLike replica la semántica LIKE 'PREFIJO-%' sobre los códigos guardados.
type fakeBatchRepo struct {
	mu      sync.Mutex
	batches map[string]*entity.Batch
	codes   []string

	maxCalls int
	maxErr   error

	// errores a devolver en los próximos Create, en orden; nil = éxito
	createErrs []error

	deactivated []string
	deleted     []string
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string]*entity.Batch)}
}

func (f *fakeBatchRepo) seedCode(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
}

func (f *fakeBatchRepo) Create(b *entity.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, c := range f.codes {
		if c == b.Code {
			return domain.ErrDuplicate
		}
	}
	f.batches[b.ID] = b
	f.codes = append(f.codes, b.Code)
	return nil
}

func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches[id], nil
}

func (f *fakeBatchRepo) Update(b *entity.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	f.batches[b.ID] = b
	return nil
}

func (f *fakeBatchRepo) List(categoryID string, includeInactive bool, limit, offset int) ([]*entity.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Batch, 0, len(f.batches))
	for _, b := range f.batches {
		if categoryID != "" && b.CategoryID != categoryID {
			continue
		}
		if !includeInactive && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBatchRepo) Deactivate(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.IsActive = false
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeBatchRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.batches, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBatchRepo) MaxCodeLike(_ context.Context, pattern string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxCalls++
	if f.maxErr != nil {
		return "", f.maxErr
	}
	prefix := strings.TrimSuffix(pattern, "%")
	max := ""
	for _, c := range f.codes {
		if strings.HasPrefix(c, prefix) && c > max {
			max = c
		}
	}
	return max, nil
}

// fakeItemRepo implementación en memoria de repository.BatchItemRepository.
// Con failErr asignado, todo Create falla a partir de failAfter éxitos.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.BatchItem

	failAfter      int
	createOK       int
	failErr        error
	deletedBatches []string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.BatchItem)}
}

func (f *fakeItemRepo) Create(it *entity.BatchItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil && f.createOK >= f.failAfter {
		return f.failErr
	}
	f.items[it.ID] = it
	f.createOK++
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.BatchItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id], nil
}

func (f *fakeItemRepo) ListByBatch(batchID string, limit, offset int) ([]*entity.BatchItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.BatchItem, 0)
	for _, it := range f.items {
		if it.BatchID == batchID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(it *entity.BatchItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[it.ID] = it
	return nil
}

func (f *fakeItemRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) DeleteByBatch(batchID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.items {
		if it.BatchID == batchID {
			delete(f.items, id)
		}
	}
	f.deletedBatches = append(f.deletedBatches, batchID)
	return nil
}

func (f *fakeItemRepo) ListLocationIDs(_ context.Context, batchID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0)
	for _, it := range f.items {
		if it.BatchID == batchID {
			out = append(out, it.LocationID)
		}
	}
	return out, nil
}

// fakeLocationRepo implementación en memoria de repository.LocationRepository.
type fakeLocationRepo struct {
	mu   sync.Mutex
	locs map[string]*entity.Location
}

func newFakeLocationRepo(locs ...*entity.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{locs: make(map[string]*entity.Location)}
	for _, l := range locs {
		f.locs[l.ID] = l
	}
	return f
}

func (f *fakeLocationRepo) Create(l *entity.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locs[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locs[id], nil
}

func (f *fakeLocationRepo) List(onlyActive bool, limit, offset int) ([]*entity.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Location, 0, len(f.locs))
	for _, l := range f.locs {
		if onlyActive && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(l *entity.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locs[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locs, id)
	return nil
}

func (f *fakeLocationRepo) NamesByIDs(_ context.Context, ids []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := f.locs[id]; ok {
			out = append(out, l.Name)
		}
	}
	return out, nil
}

// fakeInvalidator registra las invalidaciones de caché de stock.
type fakeInvalidator struct {
	mu       sync.Mutex
	batchIDs []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, batchID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchIDs = append(f.batchIDs, batchID)
}

func (f *fakeInvalidator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batchIDs)
}

// fakePurger ejecuta el callback de purga sin transacción real.
type fakePurger struct {
	batchRepo *fakeBatchRepo
	itemRepo  *fakeItemRepo
	calls     int
	err       error
}

func (p *fakePurger) RunPurge(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	itemRepo repository.BatchItemRepository,
) error) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	return fn(p.batchRepo, p.itemRepo)
}
