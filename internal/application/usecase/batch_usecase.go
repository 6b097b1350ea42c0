package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-lotes/internal/application/dto"
	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

// Intentos de asignar+insertar ante códigos duplicados por carrera de asignación.
const createBatchAttempts = 3

// BatchUseCase casos de uso CRUD para lotes. El código de cada lote lo produce
// el CodeAllocator; la carrera asignación-escritura se resuelve reintentando.
type BatchUseCase struct {
	repo      repository.BatchRepository
	allocator *CodeAllocator
	purger    PurgeRunner
	log       *logger.Logger

	// base del backoff entre reintentos; los tests la ponen en 0
	retryBackoff time.Duration
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(repo repository.BatchRepository, allocator *CodeAllocator, purger PurgeRunner, log *logger.Logger) *BatchUseCase {
	return &BatchUseCase{
		repo:         repo,
		allocator:    allocator,
		purger:       purger,
		log:          log,
		retryBackoff: 50 * time.Millisecond,
	}
}

// Create asigna un código y persiste el lote. Si otra petición concurrente ganó
// el mismo código (violación de unicidad), reasigna y reintenta con backoff
// hasta createBatchAttempts veces; después propaga ErrDuplicateCode.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	backoff := uc.retryBackoff
	for attempt := 1; ; attempt++ {
		code := uc.allocator.AllocateSingle(ctx, in.CodePrefix)
		batch := newBatch(in, code)
		err := uc.repo.Create(batch)
		if err == nil {
			return toBatchResponse(batch), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		if attempt >= createBatchAttempts {
			uc.log.Error().Str("code", code).Int("attempts", attempt).
				Msg("código duplicado persistente al crear lote; agotados los reintentos")
			return nil, domain.ErrDuplicateCode
		}
		uc.log.Warn().Str("code", code).Int("attempt", attempt).
			Msg("código duplicado por asignación concurrente; reasignando")
		time.Sleep(backoff)
		backoff *= 2
	}
}

// CreateBulk crea count lotes idénticos con códigos consecutivos obtenidos en
// una sola ida al almacén. Los inserts son independientes: una falla no detiene
// el resto y se reporta por índice.
func (uc *BatchUseCase) CreateBulk(ctx context.Context, in dto.CreateBatchesBulkRequest) (*dto.CreateBatchesBulkResponse, error) {
	if in.Count < 1 || in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	codes, err := uc.allocator.AllocateBatch(ctx, in.Count, in.CodePrefix)
	if err != nil {
		return nil, err
	}

	out := &dto.CreateBatchesBulkResponse{}
	for i, code := range codes {
		batch := newBatch(in.CreateBatchRequest, code)
		if err := uc.repo.Create(batch); err != nil {
			reason := err.Error()
			if errors.Is(err, domain.ErrDuplicate) {
				reason = domain.ErrDuplicateCode.Error()
			}
			out.Failed = append(out.Failed, dto.BulkFailure{Index: i, Reason: reason})
			continue
		}
		out.Created = append(out.Created, *toBatchResponse(batch))
	}
	return out, nil
}

// GetByID obtiene un lote por ID. (nil, nil) si no existe.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch), nil
}

// List lista lotes con paginación, filtrables por categoría e inactivos.
func (uc *BatchUseCase) List(categoryID string, includeInactive bool, limit, offset int) (*dto.BatchListResponse, error) {
	list, err := uc.repo.List(categoryID, includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un lote por reemplazo parcial. El código nunca se modifica.
func (uc *BatchUseCase) Update(id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if in.Name != nil {
		batch.Name = *in.Name
	}
	if in.CategoryID != nil {
		batch.CategoryID = *in.CategoryID
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		batch.MinStock = *in.MinStock
	}
	if in.Price != nil {
		batch.Price = in.Price
	}
	if in.IsActive != nil {
		batch.IsActive = *in.IsActive
	}
	if in.Description != nil {
		batch.Description = *in.Description
	}
	if len(in.Attributes) > 0 {
		batch.Attributes = in.Attributes
	}
	batch.UpdatedAt = time.Now()
	if err := uc.repo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// Delete aplica la política de dos pasos: un lote activo se desactiva (borrado
// lógico, reversible); un lote ya inactivo se elimina físicamente junto con sus
// unidades en una sola transacción (irreversible).
func (uc *BatchUseCase) Delete(ctx context.Context, id string) (*dto.DeleteBatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}

	if batch.IsActive {
		if err := uc.repo.Deactivate(id); err != nil {
			return nil, err
		}
		return &dto.DeleteBatchResponse{ID: id, Purged: false}, nil
	}

	err = uc.purger.RunPurge(ctx, func(
		batchRepo repository.BatchRepository,
		itemRepo repository.BatchItemRepository,
	) error {
		if err := itemRepo.DeleteByBatch(id); err != nil {
			return err
		}
		return batchRepo.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteBatchResponse{ID: id, Purged: true}, nil
}

func newBatch(in dto.CreateBatchRequest, code string) *entity.Batch {
	now := time.Now()
	return &entity.Batch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        code,
		CategoryID:  in.CategoryID,
		MinStock:    in.MinStock,
		Price:       in.Price,
		IsActive:    true,
		Description: in.Description,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Code:        b.Code,
		CategoryID:  b.CategoryID,
		MinStock:    b.MinStock,
		Price:       b.Price,
		IsActive:    b.IsActive,
		Description: b.Description,
		Attributes:  b.Attributes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
