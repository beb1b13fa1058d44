package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
	"github.com/jhoicas/perishable-inventory/internal/domain"
	domaininv "github.com/jhoicas/perishable-inventory/internal/domain/inventory"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
	"github.com/jhoicas/perishable-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/perishable-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type op struct {
	sell bool
	qty  int64
	date string
}

type store struct {
	tx        *inventory.TransactionUseCase
	analytics *usecase.AnalyticsUseCase
	runner    *sqlite.TxRunner
}

func newStore(t *testing.T, shelfDays int) *store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	shelf, err := domaininv.NewShelfLife(shelfDays)
	require.NoError(t, err)
	pricing, err := domaininv.NewPricing(decimal.RequireFromString("0.35"), decimal.RequireFromString("0.20"), "USD")
	require.NoError(t, err)

	runner := sqlite.NewTxRunner(db)
	return &store{
		tx:        inventory.NewTransactionUseCase(runner, shelf, logger.Nop().Zerolog()),
		analytics: usecase.NewAnalyticsUseCase(runner, shelf, pricing),
		runner:    runner,
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domaininv.ParseDay(s)
	require.NoError(t, err)
	return d
}

func (s *store) apply(t *testing.T, ops ...op) {
	t.Helper()
	ctx := context.Background()
	for _, o := range ops {
		input := inventory.TransactionInput{Quantity: o.qty, Date: day(t, o.date)}
		var err error
		if o.sell {
			_, err = s.tx.Sell(ctx, input)
		} else {
			_, err = s.tx.Purchase(ctx, input)
		}
		require.NoError(t, err, "%+v", o)
	}
}

func (s *store) totals(t *testing.T, start, end string) usecase.Totals {
	t.Helper()
	out, err := s.analytics.Totals(context.Background(), day(t, start), day(t, end))
	require.NoError(t, err)
	return out
}

func (s *store) inInventoryOn(t *testing.T, date string) int64 {
	t.Helper()
	ctx := context.Background()
	var inv int64
	err := s.runner.RunReadOnly(ctx, func(l repository.LedgerRepository, _ repository.BatchRepository) error {
		e, err := l.LatestOnOrBefore(ctx, day(t, date))
		if err != nil || e == nil {
			return err
		}
		inv = e.InInventory
		return nil
	})
	require.NoError(t, err)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales del período
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalytics_EmptyStore(t *testing.T) {
	s := newStore(t, 3)

	out, err := s.analytics.GetAnalytics(context.Background(), dto.AnalyticsRequest{StartDate: "2024-01-01", EndDate: "2024-12-31"})

	require.NoError(t, err)
	assert.Equal(t, dto.AnalyticsDTO{Profit: "$0.00"}, *out)
}

func TestAnalytics_PurchasedSoldAndProfit(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t, op{false, 10, "2024-01-01"}, op{true, 4, "2024-01-02"})

	out, err := s.analytics.GetAnalytics(context.Background(), dto.AnalyticsRequest{StartDate: "2024-01-01", EndDate: "2024-01-02"})

	require.NoError(t, err)
	// 0.35 × 4 − 0.20 × 10 = −0.60
	assert.Equal(t, dto.AnalyticsDTO{Purchased: 10, Sold: 4, Profit: "-$0.60", InInventory: 6}, *out)

	out, err = s.analytics.GetAnalytics(context.Background(), dto.AnalyticsRequest{StartDate: "2024-01-02", EndDate: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Purchased)
	assert.Equal(t, int64(4), out.Sold)
	assert.Equal(t, "$1.40", out.Profit)
}

func TestAnalytics_RangeBeforeAnyData(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t, op{false, 10, "2024-01-01"})

	assert.Equal(t, usecase.Totals{}, s.totals(t, "2023-01-01", "2023-12-31"))
}

func TestAnalytics_UnsweptBatchCountsAsExpired(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t, op{false, 10, "2024-01-01"}, op{true, 4, "2024-01-02"})

	// El lote del 01 vence el 04; ninguna operación barrió todavía.
	assert.Equal(t, usecase.Totals{Purchased: 10, Sold: 4, InInventory: 6}, s.totals(t, "2024-01-01", "2024-01-03"))
	assert.Equal(t, usecase.Totals{Purchased: 10, Sold: 4, InInventory: 0, Expired: 6}, s.totals(t, "2024-01-01", "2024-01-05"))
	assert.Equal(t, usecase.Totals{InInventory: 0, Expired: 6}, s.totals(t, "2024-01-04", "2024-01-04"))
	assert.Equal(t, usecase.Totals{InInventory: 0, Expired: 0}, s.totals(t, "2024-01-05", "2024-01-09"))
}

func TestAnalytics_BatchSweptAfterPeriod(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t,
		op{false, 10, "2024-01-01"},
		op{true, 4, "2024-01-02"},
		op{false, 5, "2024-01-05"}, // barre el lote del 01 y lo registra sobre el 01
	)

	assert.Equal(t, usecase.Totals{InInventory: 0, Expired: 6}, s.totals(t, "2024-01-04", "2024-01-04"))
	assert.Equal(t, usecase.Totals{Purchased: 5, InInventory: 5}, s.totals(t, "2024-01-05", "2024-01-05"))
	assert.Equal(t, usecase.Totals{Purchased: 15, Sold: 4, InInventory: 5, Expired: 6}, s.totals(t, "2024-01-01", "2024-01-07"))
	assert.Equal(t, usecase.Totals{Purchased: 15, Sold: 4, InInventory: 0, Expired: 11}, s.totals(t, "2024-01-01", "2024-01-08"))
}

func TestAnalytics_InvalidPeriod(t *testing.T) {
	s := newStore(t, 3)
	ctx := context.Background()
	cases := []dto.AnalyticsRequest{
		{StartDate: "2024-01-05", EndDate: "2024-01-01"},
		{StartDate: "", EndDate: "2024-01-01"},
		{StartDate: "2024-01-01", EndDate: ""},
		{StartDate: "2024-02-30", EndDate: "2024-03-01"},
		{StartDate: "2024/01/01", EndDate: "2024-03-01"},
	}
	for _, req := range cases {
		t.Run(req.StartDate+"_"+req.EndDate, func(t *testing.T) {
			_, err := s.analytics.GetAnalytics(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, err = s.analytics.GetRecords(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAnalytics_DoesNotMutateState(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t, op{false, 10, "2024-01-01"})
	before, err := s.tx.Store(context.Background())
	require.NoError(t, err)

	s.totals(t, "2024-01-01", "2024-02-01")

	after, err := s.tx.Store(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after, "la analítica no ejecuta barridos")
	assert.Equal(t, int64(10), s.inInventoryOn(t, "2024-02-01"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consistencia de la reconstrucción
// ──────────────────────────────────────────────────────────────────────────────

// Para cada fecha de cierre, la analítica sobre el historial completo debe coincidir con lo
// que produce un barrido real en esa fecha (una compra de 1 unidad como sonda).
func TestAnalytics_MatchesRealSweepAtEndDate(t *testing.T) {
	const shelf = 3
	history := []op{
		{false, 10, "2024-01-01"},
		{true, 3, "2024-01-02"},
		{false, 4, "2024-01-02"},
		{false, 6, "2024-01-03"},
		{true, 2, "2024-01-04"},
		{false, 6, "2024-01-06"},
		{true, 5, "2024-01-06"},
		{false, 9, "2024-01-12"},
		{true, 4, "2024-01-13"},
	}
	full := newStore(t, shelf)
	full.apply(t, history...)

	first := day(t, "2024-01-01")
	for end := first; !end.After(day(t, "2024-01-18")); end = end.AddDate(0, 0, 1) {
		endStr := domaininv.FormatDay(end)
		for _, startOffset := range []int{0, -2, -30} {
			startStr := domaininv.FormatDay(end.AddDate(0, 0, startOffset))
			t.Run(fmt.Sprintf("%s_%s", startStr, endStr), func(t *testing.T) {
				got := full.totals(t, startStr, endStr)

				probe := newStore(t, shelf)
				for _, o := range history {
					if !day(t, o.date).After(end) {
						probe.apply(t, o)
					}
				}
				probe.apply(t, op{false, 1, endStr})
				want := probe.totals(t, startStr, endStr)

				assert.Equal(t, probe.inInventoryOn(t, endStr)-1, got.InInventory, "inInventory")
				assert.Equal(t, want.Expired, got.Expired, "expired")
				assert.Equal(t, want.Purchased-1, got.Purchased, "purchased")
				assert.Equal(t, want.Sold, got.Sold, "sold")
			})
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestGetRecords(t *testing.T) {
	s := newStore(t, 3)
	s.apply(t,
		op{false, 10, "2024-01-01"},
		op{true, 4, "2024-01-02"},
		op{false, 5, "2024-01-05"},
	)

	out, err := s.analytics.GetRecords(context.Background(), dto.AnalyticsRequest{StartDate: "2024-01-01", EndDate: "2024-01-04"})

	require.NoError(t, err)
	assert.Equal(t, dto.PeriodDTO{StartDate: "2024-01-01", EndDate: "2024-01-04"}, out.Period)
	assert.Equal(t, []dto.LedgerEntryDTO{
		{Day: "2024-01-01", Purchased: 10, Expired: 6, InInventory: 10},
		{Day: "2024-01-02", Sold: 4, InInventory: 6},
	}, out.Records)

	out, err = s.analytics.GetRecords(context.Background(), dto.AnalyticsRequest{StartDate: "2023-01-01", EndDate: "2023-01-31"})
	require.NoError(t, err)
	assert.NotNil(t, out.Records)
	assert.Empty(t, out.Records)
}
