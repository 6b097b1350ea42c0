package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/inventario-lotes/internal/application/usecase"
	"github.com/tu-usuario/inventario-lotes/internal/domain/repository"
)

// TxRunner debe satisfacer el puerto de purga de la capa de aplicación.
var _ usecase.PurgeRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPurge inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Se usa para la purga física lote+unidades: ambas filas
// desaparecen juntas o no desaparece ninguna.
func (r *TxRunner) RunPurge(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	itemRepo repository.BatchItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)
	itemRepo := NewBatchItemRepository(tx)

	if err := fn(batchRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
