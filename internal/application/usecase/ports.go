package usecase

import (
	"context"

	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

// ReadTxRunner abre una transacción de solo lectura (repeatable read) para lecturas
// consistentes de varias filas del libro y de la cola.
type ReadTxRunner interface {
	RunReadOnly(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error) error
}
