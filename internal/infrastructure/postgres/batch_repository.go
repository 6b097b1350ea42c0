package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-lotes/internal/domain"
	"github.com/tu-usuario/inventario-lotes/internal/domain/entity"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, name, code, category_id, min_stock, price, is_active, description, attributes, created_at, updated_at`

// Create persiste un nuevo lote. La violación de unicidad en code se mapea a ErrDuplicate.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, name, code, category_id, min_stock, price, is_active, description, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, batch.Code, batch.CategoryID, batch.MinStock,
		batch.Price, batch.IsActive, batch.Description, batch.Attributes,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.Code, &b.CategoryID, &b.MinStock, &b.Price,
		&b.IsActive, &b.Description, &b.Attributes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Update actualiza un lote existente. El código nunca se modifica.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches SET name = $2, category_id = $3, min_stock = $4, price = $5,
			is_active = $6, description = $7, attributes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, batch.CategoryID, batch.MinStock, batch.Price,
		batch.IsActive, batch.Description, batch.Attributes, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// List lista lotes con paginación; categoryID vacío = todas las categorías.
func (r *BatchRepo) List(categoryID string, includeInactive bool, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE ($1 = '' OR category_id = $1)
		  AND ($2 OR is_active)
		ORDER BY code DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, categoryID, includeInactive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.CategoryID, &b.MinStock, &b.Price,
			&b.IsActive, &b.Description, &b.Attributes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Deactivate borra lógicamente un lote (is_active = false).
func (r *BatchRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE batches SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra físicamente la fila del lote (solo dentro de la purga transaccional).
func (r *BatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// MaxCodeLike devuelve el código lexicográficamente mayor que coincide con pattern,
// o "" si no hay ninguno. Lo usa el asignador para derivar la siguiente secuencia.
func (r *BatchRepo) MaxCodeLike(ctx context.Context, pattern string) (string, error) {
	var code string
	err := r.q.QueryRow(ctx,
		`SELECT code FROM batches WHERE code LIKE $1 ORDER BY code DESC LIMIT 1`,
		pattern,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max code: %w", err)
	}
	return code, nil
}
