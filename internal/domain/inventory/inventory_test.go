package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/perishable-inventory/internal/domain"
	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := inventory.ParseDay(s)
	require.NoError(t, err)
	return d
}

func queue(t *testing.T, pairs ...any) entity.Batches {
	t.Helper()
	var q entity.Batches
	for i := 0; i < len(pairs); i += 2 {
		q = append(q, entity.Batch{Day: day(t, pairs[i].(string)), Quantity: int64(pairs[i+1].(int))})
	}
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas y vida útil
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDay(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"2024-01-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-1-01", false},
		{"01/02/2024", false},
		{"2024-01-01T00:00:00Z", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := inventory.ParseDay(tc.in)
			if !tc.valid {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.UTC, d.Location())
			assert.Equal(t, tc.in, inventory.FormatDay(d))
		})
	}
}

func TestShelfLife_Cutoff(t *testing.T) {
	s, err := inventory.NewShelfLife(3)
	require.NoError(t, err)
	assert.Equal(t, day(t, "2024-01-02"), s.Cutoff(day(t, "2024-01-05")))
	assert.Equal(t, day(t, "2024-03-01"), s.ExpiryDay(day(t, "2024-02-27")), "2024 es bisiesto")

	_, err = inventory.NewShelfLife(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToDay(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	assert.Equal(t, day(t, "2024-06-30"), inventory.ToDay(time.Date(2024, 6, 30, 23, 0, 0, 0, loc)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de vencimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestSweep_RetiraLotesHastaElCorteInclusive(t *testing.T) {
	q := queue(t, "2024-01-01", 10, "2024-01-02", 4, "2024-01-03", 7)

	res := inventory.Sweep(q, day(t, "2024-01-02"))

	assert.Equal(t, int64(14), res.NumExpired)
	assert.Equal(t, queue(t, "2024-01-01", 10, "2024-01-02", 4), res.Expired)
	assert.Equal(t, queue(t, "2024-01-03", 7), res.Remaining)
}

func TestSweep_ColaVaciaOSinElegibles(t *testing.T) {
	assert.Zero(t, inventory.Sweep(nil, day(t, "2024-01-02")).NumExpired)

	q := queue(t, "2024-01-05", 3)
	res := inventory.Sweep(q, day(t, "2024-01-02"))
	assert.Zero(t, res.NumExpired)
	assert.Empty(t, res.Expired)
	assert.Equal(t, q, res.Remaining)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo FIFO
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeFIFO(t *testing.T) {
	base := queue(t, "2024-01-01", 5, "2024-01-02", 3, "2024-01-04", 6)

	cases := []struct {
		name      string
		quantity  int64
		removed   entity.Batches
		reduced   *entity.Batch
		remaining entity.Batches
	}{
		{
			name:      "parcial del lote más antiguo",
			quantity:  2,
			reduced:   &entity.Batch{Day: day(t, "2024-01-01"), Quantity: 3},
			remaining: queue(t, "2024-01-01", 3, "2024-01-02", 3, "2024-01-04", 6),
		},
		{
			name:      "exactamente el primer lote",
			quantity:  5,
			removed:   queue(t, "2024-01-01", 5),
			remaining: queue(t, "2024-01-02", 3, "2024-01-04", 6),
		},
		{
			name:      "cruza dos lotes",
			quantity:  9,
			removed:   queue(t, "2024-01-01", 5, "2024-01-02", 3),
			reduced:   &entity.Batch{Day: day(t, "2024-01-04"), Quantity: 5},
			remaining: queue(t, "2024-01-04", 5),
		},
		{
			name:     "toda la cola",
			quantity: 14,
			removed:  base,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := inventory.ConsumeFIFO(base, tc.quantity)
			require.NoError(t, err)
			assert.Equal(t, tc.removed, res.Removed)
			assert.Equal(t, tc.reduced, res.Reduced)
			assert.Equal(t, tc.remaining.Total(), res.Remaining.Total())
			assert.Equal(t, tc.remaining, res.Remaining)
			assert.Equal(t, base.Total()-tc.quantity, res.Remaining.Total())
		})
	}
}

func TestConsumeFIFO_NoModificaLaColaOriginal(t *testing.T) {
	q := queue(t, "2024-01-01", 5, "2024-01-02", 3)
	_, err := inventory.ConsumeFIFO(q, 6)
	require.NoError(t, err)
	assert.Equal(t, queue(t, "2024-01-01", 5, "2024-01-02", 3), q)
}

func TestConsumeFIFO_StockInsuficiente(t *testing.T) {
	_, err := inventory.ConsumeFIFO(queue(t, "2024-01-01", 5), 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.ConsumeFIFO(queue(t, "2024-01-01", 5), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconstrucción
// ──────────────────────────────────────────────────────────────────────────────

func TestWindows(t *testing.T) {
	s := inventory.ShelfLife(3)

	w := s.Windows(day(t, "2024-01-10"), day(t, "2024-01-20"), day(t, "2024-01-15"))

	assert.Equal(t, inventory.DayRange{From: day(t, "2024-01-07"), To: day(t, "2024-01-12")}, w.Journaled)
	assert.Equal(t, inventory.DayRange{From: day(t, "2024-01-13"), To: day(t, "2024-01-17")}, w.Pending)
	assert.Equal(t, w.Pending, w.PendingInPeriod)
}

func TestWindows_SnapshotAnteriorAlPeriodo(t *testing.T) {
	s := inventory.ShelfLife(3)

	w := s.Windows(day(t, "2024-01-10"), day(t, "2024-01-20"), day(t, "2024-01-02"))

	assert.True(t, w.Journaled.Empty(), "nada registrado vence dentro del período")
	assert.Equal(t, inventory.DayRange{From: day(t, "2023-12-31"), To: day(t, "2024-01-17")}, w.Pending)
	assert.Equal(t, inventory.DayRange{From: day(t, "2024-01-07"), To: day(t, "2024-01-17")}, w.PendingInPeriod)
}

func TestReconstruct(t *testing.T) {
	got := inventory.Reconstruct(20, 4,
		inventory.PendingExpiry{Queued: 6, Journaled: 2},
		inventory.PendingExpiry{Queued: 5})

	assert.Equal(t, inventory.ExpiryTotals{InInventory: 12, Expired: 9}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPricing_ProfitYFormato(t *testing.T) {
	p, err := inventory.NewPricing(decimal.RequireFromString("0.35"), decimal.RequireFromString("0.20"), "USD")
	require.NoError(t, err)

	profit := p.Profit(10, 10)
	assert.True(t, decimal.RequireFromString("1.50").Equal(profit), "obtenido %s", profit)
	assert.Equal(t, "$1.50", p.Format(profit))

	assert.Equal(t, "-$2.00", p.Format(p.Profit(10, 0)))
	assert.Equal(t, "$0.00", p.Format(p.Profit(0, 0)))
	assert.Equal(t, "$3,500.00", p.Format(p.Profit(0, 10000)))
}

func TestPricing_RedondeoADosDecimales(t *testing.T) {
	p, err := inventory.NewPricing(decimal.RequireFromString("0.125"), decimal.Zero, "USD")
	require.NoError(t, err)

	assert.Equal(t, "$0.13", p.Format(p.Profit(0, 1)))
	assert.Equal(t, "$0.38", p.Format(p.Profit(0, 3)))
}

func TestNewPricing_Invalido(t *testing.T) {
	_, err := inventory.NewPricing(decimal.NewFromInt(-1), decimal.Zero, "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.NewPricing(decimal.NewFromInt(1), decimal.Zero, "XXZ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
