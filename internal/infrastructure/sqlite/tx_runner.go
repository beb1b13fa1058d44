package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ReadTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewLedgerRepository(tx), NewBatchRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReadOnly con una sola conexión cualquier transacción ve un estado consistente.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.Run(ctx, fn)
}
