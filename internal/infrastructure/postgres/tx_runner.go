package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.ReadTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.ReadTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	log        zerolog.Logger
}

// NewTxRunner construye el runner con el pool. maxRetries es el número de reintentos
// ante fallas de serialización.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, maxRetries: maxRetries, log: log}
}

// Run inicia una transacción SERIALIZABLE, ejecuta fn con repos atados a la tx (con bloqueo de
// filas) y hace Commit o Rollback. Ante una falla de serialización reintenta fn completa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		err = r.run(ctx, opts, true, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		r.log.Debug().Int("attempt", attempt+1).Err(err).Msg("conflicto de serialización, reintentando")
	}
	return err
}

// RunReadOnly inicia una transacción REPEATABLE READ de solo lectura.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, false, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, lock bool, fn func(
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	batchRepo := NewBatchRepository(tx)
	if lock {
		ledgerRepo = ledgerRepo.ForUpdate()
		batchRepo = batchRepo.ForUpdate()
	}

	if err := fn(ledgerRepo, batchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
