package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los bloqueos FOR UPDATE adquiridos dentro de fn se
// liberan al terminar la transacción. Un timeout de lock o deadlock detectado
// por Postgres se devuelve como ErrStockChangedConcurrently (reintentable);
// la cancelación del contexto aborta el commit y dispara el rollback diferido.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRecordRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(stockRepo, movRepo); err != nil {
		if isRetryableTxError(err) {
			return domain.ErrStockChangedConcurrently
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		// Un fallo de serialización puede aflorar recién en el commit.
		if isRetryableTxError(err) {
			return domain.ErrStockChangedConcurrently
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
