package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/perishable-inventory/internal/domain"
	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/inventory"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

// TransactionUseCase registra compras y ventas de forma transaccional sobre el libro diario
// y la cola de lotes. Cada operación barre primero los lotes vencidos a la fecha de la
// operación y luego aplica su efecto; todo se confirma o se revierte junto (TxRunner.Run).
type TransactionUseCase struct {
	txRunner  TxRunner
	shelfLife inventory.ShelfLife
	log       zerolog.Logger
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(txRunner TxRunner, shelfLife inventory.ShelfLife, log zerolog.Logger) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:  txRunner,
		shelfLife: shelfLife,
		log:       log,
	}
}

// TransactionInput entrada para registrar una compra o una venta.
type TransactionInput struct {
	Quantity int64
	Date     time.Time
}

func (in TransactionInput) validate() error {
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: fecha requerida", domain.ErrInvalidInput)
	}
	return nil
}

// Purchase registra la compra de Quantity unidades en Date y devuelve la cola resultante.
// Falla con domain.ErrOutOfOrder si Date es anterior al último día registrado.
func (uc *TransactionUseCase) Purchase(ctx context.Context, input TransactionInput) (entity.Batches, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	day := inventory.ToDay(input.Date)
	qty := input.Quantity

	var store entity.Batches
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error {
		last, err := uc.lastRecord(ctx, ledgerRepo, day)
		if err != nil {
			return err
		}
		queue, numExpired, err := uc.expire(ctx, ledgerRepo, batchRepo, day)
		if err != nil {
			return err
		}

		if isNewDay(last, day) {
			entry := &entity.LedgerEntry{
				Day:         day,
				Purchased:   qty,
				InInventory: lastInventory(last) + qty - numExpired,
			}
			if err := ledgerRepo.Create(ctx, entry); err != nil {
				return err
			}
			if err := batchRepo.Create(ctx, entity.Batch{Day: day, Quantity: qty}); err != nil {
				return err
			}
		} else {
			if err := ledgerRepo.Increment(ctx, day, qty, 0, qty-numExpired); err != nil {
				return err
			}
			// Una venta previa del mismo día crea la fila del libro pero no el lote.
			if i := queue.Find(day); i >= 0 {
				err = batchRepo.SetQuantity(ctx, day, queue[i].Quantity+qty)
			} else {
				err = batchRepo.Create(ctx, entity.Batch{Day: day, Quantity: qty})
			}
			if err != nil {
				return err
			}
		}

		store, err = batchRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Sell registra la venta de Quantity unidades en Date consumiendo los lotes en orden FIFO.
// Falla con domain.ErrInsufficientStock si Quantity supera el stock fresco disponible;
// en ese caso no se persiste ningún cambio, ni siquiera el barrido.
func (uc *TransactionUseCase) Sell(ctx context.Context, input TransactionInput) (entity.Batches, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	day := inventory.ToDay(input.Date)
	qty := input.Quantity

	var store entity.Batches
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error {
		last, err := uc.lastRecord(ctx, ledgerRepo, day)
		if err != nil {
			return err
		}
		queue, numExpired, err := uc.expire(ctx, ledgerRepo, batchRepo, day)
		if err != nil {
			return err
		}

		available := lastInventory(last) - numExpired
		if queued := queue.Total(); queued != available {
			uc.log.Warn().
				Str("day", inventory.FormatDay(day)).
				Int64("ledger_available", available).
				Int64("queued", queued).
				Msg("inventario del libro y cola de lotes divergen")
			available = min(available, queued)
		}
		if qty > available {
			return fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, qty, available)
		}

		if isNewDay(last, day) {
			entry := &entity.LedgerEntry{
				Day:         day,
				Sold:        qty,
				InInventory: lastInventory(last) - qty - numExpired,
			}
			err = ledgerRepo.Create(ctx, entry)
		} else {
			err = ledgerRepo.Increment(ctx, day, 0, qty, -qty-numExpired)
		}
		if err != nil {
			return err
		}

		plan, err := inventory.ConsumeFIFO(queue, qty)
		if err != nil {
			return err
		}
		if len(plan.Removed) > 0 {
			days := make([]time.Time, 0, len(plan.Removed))
			for _, b := range plan.Removed {
				days = append(days, b.Day)
			}
			if err := batchRepo.Delete(ctx, days...); err != nil {
				return err
			}
		}
		if plan.Reduced != nil {
			if err := batchRepo.SetQuantity(ctx, plan.Reduced.Day, plan.Reduced.Quantity); err != nil {
				return err
			}
		}

		store, err = batchRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Store devuelve la cola de lotes actual sin ejecutar barrido.
func (uc *TransactionUseCase) Store(ctx context.Context) (entity.Batches, error) {
	var store entity.Batches
	err := uc.txRunner.RunReadOnly(ctx, func(
		_ repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error {
		var err error
		store, err = batchRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// lastRecord obtiene la fila más reciente del libro y rechaza fechas anteriores a ella
// (o al epoch si el libro está vacío). Devuelve nil si el libro está vacío.
func (uc *TransactionUseCase) lastRecord(ctx context.Context, ledgerRepo repository.LedgerRepository, day time.Time) (*entity.LedgerEntry, error) {
	last, err := ledgerRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	floor := inventory.Epoch
	if last != nil {
		floor = last.Day
	}
	if day.Before(floor) {
		return nil, fmt.Errorf("%w: %s es anterior a %s",
			domain.ErrOutOfOrder, inventory.FormatDay(day), inventory.FormatDay(floor))
	}
	return last, nil
}

// isNewDay indica si la operación abre una fila nueva en el libro.
func isNewDay(last *entity.LedgerEntry, day time.Time) bool {
	return last == nil || day.After(last.Day)
}

func lastInventory(last *entity.LedgerEntry) int64 {
	if last == nil {
		return 0
	}
	return last.InInventory
}

// expire barre los lotes vencidos en day: los elimina de la cola y acumula su cantidad
// en expired de la fila de su día de compra. Devuelve la cola fresca y las unidades vencidas.
func (uc *TransactionUseCase) expire(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
	day time.Time,
) (entity.Batches, int64, error) {
	queue, err := batchRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	cutoff := uc.shelfLife.Cutoff(day)
	res := inventory.Sweep(queue, cutoff)
	if len(res.Expired) == 0 {
		return res.Remaining, 0, nil
	}

	if err := batchRepo.DeleteUpTo(ctx, cutoff); err != nil {
		return nil, 0, err
	}
	for _, b := range res.Expired {
		if err := ledgerRepo.AddExpired(ctx, b.Day, b.Quantity); err != nil {
			return nil, 0, err
		}
		uc.log.Trace().
			Str("purchase_day", inventory.FormatDay(b.Day)).
			Str("expiry_day", inventory.FormatDay(uc.shelfLife.ExpiryDay(b.Day))).
			Int64("quantity", b.Quantity).
			Msg("lote vencido")
	}
	uc.log.Debug().
		Str("cutoff", inventory.FormatDay(cutoff)).
		Int("batches", len(res.Expired)).
		Int64("expired", res.NumExpired).
		Msg("lotes vencidos retirados")
	return res.Remaining, res.NumExpired, nil
}
