package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/domain"
	"github.com/jhoicas/perishable-inventory/internal/domain/inventory"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

// AnalyticsUseCase reconstruye compras, ventas, vencimientos e inventario para un período
// arbitrario. Es de solo lectura: nunca ejecuta el barrido, por eso reconstruye lo que un
// barrido en end_date habría producido (ver inventory.ShelfLife.Windows).
type AnalyticsUseCase struct {
	txRunner  ReadTxRunner
	shelfLife inventory.ShelfLife
	pricing   inventory.Pricing
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(txRunner ReadTxRunner, shelfLife inventory.ShelfLife, pricing inventory.Pricing) *AnalyticsUseCase {
	return &AnalyticsUseCase{txRunner: txRunner, shelfLife: shelfLife, pricing: pricing}
}

// Totals resultado crudo de la analítica de un período.
type Totals struct {
	Purchased   int64
	Sold        int64
	InInventory int64
	Expired     int64
}

// GetAnalytics genera el reporte del período [start_date, end_date] con la utilidad formateada.
func (uc *AnalyticsUseCase) GetAnalytics(ctx context.Context, req dto.AnalyticsRequest) (*dto.AnalyticsDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	totals, err := uc.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &dto.AnalyticsDTO{
		Purchased:   totals.Purchased,
		Sold:        totals.Sold,
		Profit:      uc.pricing.Format(uc.pricing.Profit(totals.Purchased, totals.Sold)),
		InInventory: totals.InInventory,
		Expired:     totals.Expired,
	}, nil
}

// Totals calcula los cuatro totales del período dentro de una sola transacción de lectura.
func (uc *AnalyticsUseCase) Totals(ctx context.Context, start, end time.Time) (Totals, error) {
	var out Totals
	err := uc.txRunner.RunReadOnly(ctx, func(
		ledgerRepo repository.LedgerRepository,
		batchRepo repository.BatchRepository,
	) error {
		var err error
		out.Purchased, out.Sold, err = ledgerRepo.SumPurchasedSold(ctx, start, end)
		if err != nil {
			return fmt.Errorf("analytics: compras y ventas: %w", err)
		}
		exp, err := uc.expiryAndInventory(ctx, ledgerRepo, batchRepo, start, end)
		if err != nil {
			return fmt.Errorf("analytics: vencimientos: %w", err)
		}
		out.InInventory, out.Expired = exp.InInventory, exp.Expired
		return nil
	})
	return out, err
}

// expiryAndInventory reconstruye inventario fresco al cierre de end y unidades cuyo
// vencimiento (día de compra + vida útil) cae en [start, end].
func (uc *AnalyticsUseCase) expiryAndInventory(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
	start, end time.Time,
) (inventory.ExpiryTotals, error) {
	snapshot, err := ledgerRepo.LatestOnOrBefore(ctx, end)
	if err != nil {
		return inventory.ExpiryTotals{}, err
	}
	if snapshot == nil {
		// Sin filas hasta end tampoco hay lotes hasta end.
		return inventory.ExpiryTotals{}, nil
	}

	w := uc.shelfLife.Windows(start, end, snapshot.Day)

	journaled, err := sumExpired(ctx, ledgerRepo, w.Journaled)
	if err != nil {
		return inventory.ExpiryTotals{}, err
	}
	pending, err := pendingExpiry(ctx, ledgerRepo, batchRepo, w.Pending)
	if err != nil {
		return inventory.ExpiryTotals{}, err
	}
	pendingInPeriod, err := pendingExpiry(ctx, ledgerRepo, batchRepo, w.PendingInPeriod)
	if err != nil {
		return inventory.ExpiryTotals{}, err
	}
	return inventory.Reconstruct(snapshot.InInventory, journaled, pending, pendingInPeriod), nil
}

func sumExpired(ctx context.Context, ledgerRepo repository.LedgerRepository, r inventory.DayRange) (int64, error) {
	if r.Empty() {
		return 0, nil
	}
	return ledgerRepo.SumExpired(ctx, r.From, r.To)
}

// pendingExpiry suma lo vencido lógicamente en el rango: lotes aún en cola más lotes
// barridos por una operación posterior (registrados sobre su día de compra).
func pendingExpiry(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	batchRepo repository.BatchRepository,
	r inventory.DayRange,
) (inventory.PendingExpiry, error) {
	if r.Empty() {
		return inventory.PendingExpiry{}, nil
	}
	queued, err := batchRepo.Sum(ctx, r.From, r.To)
	if err != nil {
		return inventory.PendingExpiry{}, err
	}
	journaled, err := ledgerRepo.SumExpired(ctx, r.From, r.To)
	if err != nil {
		return inventory.PendingExpiry{}, err
	}
	return inventory.PendingExpiry{Queued: queued, Journaled: journaled}, nil
}

// GetRecords lista las filas del libro diario del período.
func (uc *AnalyticsUseCase) GetRecords(ctx context.Context, req dto.AnalyticsRequest) (*dto.RecordsResponseDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	records := make([]dto.LedgerEntryDTO, 0)
	err = uc.txRunner.RunReadOnly(ctx, func(
		ledgerRepo repository.LedgerRepository,
		_ repository.BatchRepository,
	) error {
		entries, err := ledgerRepo.List(ctx, start, end)
		if err != nil {
			return err
		}
		for _, e := range entries {
			records = append(records, dto.LedgerEntryDTO{
				Day:         inventory.FormatDay(e.Day),
				Purchased:   e.Purchased,
				Sold:        e.Sold,
				Expired:     e.Expired,
				InInventory: e.InInventory,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.RecordsResponseDTO{
		Period: dto.PeriodDTO{
			StartDate: inventory.FormatDay(start),
			EndDate:   inventory.FormatDay(end),
		},
		Records: records,
	}, nil
}

// parsePeriod valida start_date y end_date (YYYY-MM-DD, ambos obligatorios, start <= end).
func parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	start, err = inventory.ParseDay(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}
	end, err = inventory.ParseDay(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
