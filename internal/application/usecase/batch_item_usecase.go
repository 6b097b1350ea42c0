package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-lotes/internal/application/dto"
	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// Paralelismo acotado para la creación masiva de unidades (inserts independientes).
const bulkItemWorkers = 4

// BatchItemUseCase casos de uso CRUD para unidades de lote. Cada escritura
// invalida el resumen de stock cacheado del lote afectado.
type BatchItemUseCase struct {
	repo         repository.BatchItemRepository
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
	invalidator  StockInvalidator
	log          *logger.Logger
}

// NewBatchItemUseCase construye el caso de uso.
func NewBatchItemUseCase(
	repo repository.BatchItemRepository,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
	invalidator StockInvalidator,
	log *logger.Logger,
) *BatchItemUseCase {
	return &BatchItemUseCase{
		repo:         repo,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
		invalidator:  invalidator,
		log:          log,
	}
}

// Create registra una unidad. Valida que el lote y la ubicación existan.
func (uc *BatchItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.BatchItemResponse, error) {
	if in.BatchID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ItemStatusAvailable
	}
	if !entity.ValidItemStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkReferences(in.BatchID, in.LocationID); err != nil {
		return nil, err
	}

	item := newBatchItem(in.BatchID, in.LocationID, in.SKU, status, in.SerialNumber, in.Notes)
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, in.BatchID)
	return toItemResponse(item), nil
}

// CreateBulk registra quantity unidades idénticas con inserts independientes y
// paralelismo acotado (sin transacción: una falla deja un conjunto parcial).
// Devuelve las unidades creadas y la lista de índices fallidos con su motivo.
func (uc *BatchItemUseCase) CreateBulk(ctx context.Context, in dto.CreateItemsBulkRequest) (*dto.CreateItemsBulkResponse, error) {
	if in.BatchID == "" || in.LocationID == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ItemStatusAvailable
	}
	if !entity.ValidItemStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkReferences(in.BatchID, in.LocationID); err != nil {
		return nil, err
	}

	type result struct {
		index int
		item  *entity.BatchItem
		err   error
	}

	indices := make(chan int)
	results := make(chan result, in.Quantity)

	var wg sync.WaitGroup
	for w := 0; w < bulkItemWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				item := newBatchItem(in.BatchID, in.LocationID, in.SKU, status, nil, nil)
				results <- result{index: i, item: item, err: uc.repo.Create(item)}
			}
		}()
	}
	for i := 0; i < in.Quantity; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()
	close(results)

	out := &dto.CreateItemsBulkResponse{}
	for r := range results {
		if r.err != nil {
			uc.log.Warn().Err(r.err).Int("index", r.index).Str("batch_id", in.BatchID).
				Msg("falló el insert de una unidad en la creación masiva")
			out.Failed = append(out.Failed, dto.BulkFailure{Index: r.index, Reason: r.err.Error()})
			continue
		}
		out.Created = append(out.Created, *toItemResponse(r.item))
	}
	// Orden estable por índice para que la respuesta sea determinista.
	sort.Slice(out.Failed, func(i, j int) bool { return out.Failed[i].Index < out.Failed[j].Index })
	sort.Slice(out.Created, func(i, j int) bool { return out.Created[i].ID < out.Created[j].ID })

	if len(out.Created) > 0 {
		uc.invalidator.Invalidate(ctx, in.BatchID)
	}
	return out, nil
}

// GetByID obtiene una unidad por ID. (nil, nil) si no existe.
func (uc *BatchItemUseCase) GetByID(id string) (*dto.BatchItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// ListByBatch lista las unidades de un lote con paginación.
func (uc *BatchItemUseCase) ListByBatch(batchID string, limit, offset int) (*dto.BatchItemListResponse, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByBatch(batchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.BatchItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza estado, ubicación, serial o notas de una unidad.
func (uc *BatchItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.BatchItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Status != nil {
		if !entity.ValidItemStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		item.Status = *in.Status
	}
	if in.LocationID != nil {
		loc, err := uc.locationRepo.GetByID(*in.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
		item.LocationID = *in.LocationID
	}
	if in.SerialNumber != nil {
		item.SerialNumber = in.SerialNumber
	}
	if in.SKU != nil {
		item.SKU = *in.SKU
	}
	if in.Notes != nil {
		item.Notes = in.Notes
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, item.BatchID)
	return toItemResponse(item), nil
}

// Delete elimina una unidad físicamente (sin soft-delete).
func (uc *BatchItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, item.BatchID)
	return nil
}

// checkReferences valida que el lote y la ubicación existan.
func (uc *BatchItemUseCase) checkReferences(batchID, locationID string) error {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	loc, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}

func newBatchItem(batchID, locationID, sku, status string, serial, notes *string) *entity.BatchItem {
	now := time.Now()
	return &entity.BatchItem{
		ID:           uuid.New().String(),
		BatchID:      batchID,
		SerialNumber: serial,
		SKU:          sku,
		LocationID:   locationID,
		Status:       status,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func toItemResponse(it *entity.BatchItem) *dto.BatchItemResponse {
	if it == nil {
		return nil
	}
	return &dto.BatchItemResponse{
		ID:           it.ID,
		BatchID:      it.BatchID,
		SerialNumber: it.SerialNumber,
		SKU:          it.SKU,
		LocationID:   it.LocationID,
		Status:       it.Status,
		Notes:        it.Notes,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}
