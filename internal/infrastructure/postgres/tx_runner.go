package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JuanMV14/comisiones-sub000/internal/application/devoluciones"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

var _ devoluciones.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDevolucion inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback. La escritura de la devolución y el recomputo de la
// comisión de su factura quedan en la misma transacción.
func (r *TxRunner) RunDevolucion(ctx context.Context, fn func(
	facturaRepo repository.FacturaRepository,
	devolucionRepo repository.DevolucionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	facturaRepo := NewFacturaRepository(tx)
	devolucionRepo := NewDevolucionRepository(tx)

	if err := fn(facturaRepo, devolucionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
