package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-lotes/internal/application/dto"
	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/pkg/logger"
)

type itemTestDeps struct {
	uc          *BatchItemUseCase
	itemRepo    *fakeItemRepo
	invalidator *fakeInvalidator
}

func newTestItemUC(t *testing.T) itemTestDeps {
	t.Helper()
	batchRepo := newFakeBatchRepo()
	require.NoError(t, batchRepo.Create(&entity.Batch{ID: "batch-1", Name: "Reactivo A", Code: "BCH-20240615-001", IsActive: true}))
	locRepo := newFakeLocationRepo(
		&entity.Location{ID: "loc-1", Name: "Bodega Norte", IsActive: true},
		&entity.Location{ID: "loc-2", Name: "Bodega Sur", IsActive: true},
	)
	itemRepo := newFakeItemRepo()
	inv := &fakeInvalidator{}
	return itemTestDeps{
		uc:          NewBatchItemUseCase(itemRepo, batchRepo, locRepo, inv, logger.Nop()),
		itemRepo:    itemRepo,
		invalidator: inv,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_EstadoPorDefectoEsAvailable(t *testing.T) {
	d := newTestItemUC(t)

	out, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1", SKU: "SKU-9",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusAvailable, out.Status)
	assert.Equal(t, 1, d.invalidator.count(),
		"registrar una unidad debe invalidar el resumen de stock")
}

func TestItemCreate_EstadoInvalido(t *testing.T) {
	d := newTestItemUC(t)

	_, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1", Status: "broken",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, d.invalidator.count())
}

func TestItemCreate_LoteOUbicacionInexistentes(t *testing.T) {
	d := newTestItemUC(t)

	_, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "nope", LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "lote inexistente")

	_, err = d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "ubicación inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBulk
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreateBulk_CreaTodasLasUnidades(t *testing.T) {
	d := newTestItemUC(t)

	out, err := d.uc.CreateBulk(context.Background(), dto.CreateItemsBulkRequest{
		BatchID: "batch-1", LocationID: "loc-1", SKU: "SKU-9", Quantity: 5,
	})

	require.NoError(t, err)
	assert.Len(t, out.Created, 5)
	assert.Empty(t, out.Failed)
	assert.Equal(t, 1, d.invalidator.count())
}

func TestItemCreateBulk_FallasParcialesPorIndice(t *testing.T) {
	d := newTestItemUC(t)
	d.itemRepo.failAfter = 3
	d.itemRepo.failErr = errors.New("disco lleno")

	out, err := d.uc.CreateBulk(context.Background(), dto.CreateItemsBulkRequest{
		BatchID: "batch-1", LocationID: "loc-1", Quantity: 5,
	})

	require.NoError(t, err, "las fallas parciales se reportan, no se propagan")
	assert.Len(t, out.Created, 3)
	require.Len(t, out.Failed, 2)
	for i, f := range out.Failed {
		assert.Equal(t, "disco lleno", f.Reason)
		assert.GreaterOrEqual(t, f.Index, 0)
		assert.Less(t, f.Index, 5)
		if i > 0 {
			assert.Greater(t, f.Index, out.Failed[i-1].Index,
				"los índices fallidos deben venir ordenados y sin repetir")
		}
	}
	assert.Equal(t, 1, d.invalidator.count(),
		"si al menos una unidad se creó, el resumen cacheado queda obsoleto")
}

func TestItemCreateBulk_NadaCreadoNoInvalida(t *testing.T) {
	d := newTestItemUC(t)
	d.itemRepo.failErr = errors.New("disco lleno")

	out, err := d.uc.CreateBulk(context.Background(), dto.CreateItemsBulkRequest{
		BatchID: "batch-1", LocationID: "loc-1", Quantity: 3,
	})

	require.NoError(t, err)
	assert.Empty(t, out.Created)
	assert.Len(t, out.Failed, 3)
	assert.Equal(t, 0, d.invalidator.count())
}

func TestItemCreateBulk_ValidaCantidad(t *testing.T) {
	d := newTestItemUC(t)

	_, err := d.uc.CreateBulk(context.Background(), dto.CreateItemsBulkRequest{
		BatchID: "batch-1", LocationID: "loc-1", Quantity: 0,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_CambioDeEstadoYUbicacion(t *testing.T) {
	d := newTestItemUC(t)
	created, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1",
	})
	require.NoError(t, err)

	status := entity.ItemStatusInUse
	loc := "loc-2"
	out, err := d.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{
		Status: &status, LocationID: &loc,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusInUse, out.Status)
	assert.Equal(t, "loc-2", out.LocationID)
	assert.Equal(t, 2, d.invalidator.count(), "create + update")
}

func TestItemUpdate_EstadoInvalido(t *testing.T) {
	d := newTestItemUC(t)
	created, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1",
	})
	require.NoError(t, err)

	status := "broken"
	_, err = d.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{Status: &status})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUpdate_UbicacionInexistente(t *testing.T) {
	d := newTestItemUC(t)
	created, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1",
	})
	require.NoError(t, err)

	loc := "nope"
	_, err = d.uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{LocationID: &loc})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDelete_EliminaEInvalida(t *testing.T) {
	d := newTestItemUC(t)
	created, err := d.uc.Create(context.Background(), dto.CreateItemRequest{
		BatchID: "batch-1", LocationID: "loc-1",
	})
	require.NoError(t, err)

	require.NoError(t, d.uc.Delete(context.Background(), created.ID))

	got, err := d.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 2, d.invalidator.count(), "create + delete")
}

func TestItemDelete_Inexistente(t *testing.T) {
	d := newTestItemUC(t)

	err := d.uc.Delete(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
