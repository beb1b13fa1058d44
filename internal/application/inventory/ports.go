package inventory

import (
	"context"

	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Run garantiza atomicidad y aislamiento serializable para compras y ventas; RunReadOnly abre
// una transacción de solo lectura con una vista consistente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error) error
	RunReadOnly(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error) error
}
