package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

var _ repository.BatchItemRepository = (*BatchItemRepo)(nil)

// BatchItemRepo implementación del puerto BatchItemRepository sobre PostgreSQL (usable con pool o tx).
type BatchItemRepo struct {
	q Querier
}

// NewBatchItemRepository construye el adaptador de persistencia para unidades. Pasar pool o tx (Querier).
func NewBatchItemRepository(q Querier) *BatchItemRepo {
	return &BatchItemRepo{q: q}
}

const itemColumns = `id, batch_id, serial_number, sku, location_id, status, notes, created_at, updated_at`

// Create persiste una nueva unidad de lote.
func (r *BatchItemRepo) Create(item *entity.BatchItem) error {
	query := `
		INSERT INTO batch_items (id, batch_id, serial_number, sku, location_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BatchID, item.SerialNumber, item.SKU, item.LocationID,
		item.Status, item.Notes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch item: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID. (nil, nil) si no existe.
func (r *BatchItemRepo) GetByID(id string) (*entity.BatchItem, error) {
	query := `SELECT ` + itemColumns + ` FROM batch_items WHERE id = $1`
	var it entity.BatchItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.BatchID, &it.SerialNumber, &it.SKU, &it.LocationID,
		&it.Status, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch item: %w", err)
	}
	return &it, nil
}

// ListByBatch lista las unidades de un lote con paginación.
func (r *BatchItemRepo) ListByBatch(batchID string, limit, offset int) ([]*entity.BatchItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM batch_items WHERE batch_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, batchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batch items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchItem
	for rows.Next() {
		var it entity.BatchItem
		if err := rows.Scan(&it.ID, &it.BatchID, &it.SerialNumber, &it.SKU, &it.LocationID,
			&it.Status, &it.Notes, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza una unidad existente.
func (r *BatchItemRepo) Update(item *entity.BatchItem) error {
	query := `
		UPDATE batch_items SET serial_number = $2, sku = $3, location_id = $4,
			status = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SerialNumber, item.SKU, item.LocationID,
		item.Status, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch item: %w", err)
	}
	return nil
}

// Delete elimina una unidad por ID (borrado físico).
func (r *BatchItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batch_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch item: %w", err)
	}
	return nil
}

// DeleteByBatch elimina todas las unidades de un lote (purga transaccional).
func (r *BatchItemRepo) DeleteByBatch(batchID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batch_items WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete items by batch: %w", err)
	}
	return nil
}

// ListLocationIDs proyecta solo location_id de las unidades del lote, con duplicados.
func (r *BatchItemRepo) ListLocationIDs(ctx context.Context, batchID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT location_id FROM batch_items WHERE batch_id = $1`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list item locations: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan location id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
