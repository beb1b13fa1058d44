package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro diario sobre PostgreSQL (usable con pool o tx).
type LedgerRepo struct {
	q    Querier
	lock bool
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// ForUpdate devuelve una copia que bloquea las filas leídas con Latest (SELECT FOR UPDATE).
// Solo válido dentro de una transacción de escritura.
func (r *LedgerRepo) ForUpdate() *LedgerRepo {
	return &LedgerRepo{q: r.q, lock: true}
}

const ledgerColumns = `day, purchased, sold, expired, in_inventory`

// Latest obtiene la fila con el día más reciente.
func (r *LedgerRepo) Latest(ctx context.Context) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries ORDER BY day DESC LIMIT 1`
	if r.lock {
		query += ` FOR UPDATE`
	}
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("get latest ledger entry: %w", err)
	}
	return e, nil
}

// LatestOnOrBefore obtiene la última fila con day <= day.
func (r *LedgerRepo) LatestOnOrBefore(ctx context.Context, day time.Time) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE day <= $1 ORDER BY day DESC LIMIT 1`
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, query, day))
	if err != nil {
		return nil, fmt.Errorf("get ledger entry on or before: %w", err)
	}
	return e, nil
}

// Create inserta la fila de un día nuevo.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (day, purchased, sold, expired, in_inventory)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, e.Day, e.Purchased, e.Sold, e.Expired, e.InInventory)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// Increment suma deltas a la fila existente del día.
func (r *LedgerRepo) Increment(ctx context.Context, day time.Time, purchased, sold, inventoryDelta int64) error {
	query := `
		UPDATE ledger_entries AS le
		SET purchased = le.purchased + $1, sold = le.sold + $2, in_inventory = le.in_inventory + $3
		WHERE le.day = $4`
	tag, err := r.q.Exec(ctx, query, purchased, sold, inventoryDelta, day)
	if err != nil {
		return fmt.Errorf("increment ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment ledger entry %s: fila inexistente", day.Format(time.DateOnly))
	}
	return nil
}

// AddExpired acumula vencidos sobre la fila del día de compra.
func (r *LedgerRepo) AddExpired(ctx context.Context, day time.Time, quantity int64) error {
	query := `UPDATE ledger_entries AS le SET expired = le.expired + $1 WHERE le.day = $2`
	tag, err := r.q.Exec(ctx, query, quantity, day)
	if err != nil {
		return fmt.Errorf("add expired: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("add expired %s: fila inexistente", day.Format(time.DateOnly))
	}
	return nil
}

// SumPurchasedSold suma compras y ventas en [from, to]. COALESCE devuelve cero si no hay filas.
func (r *LedgerRepo) SumPurchasedSold(ctx context.Context, from, to time.Time) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(purchased), 0), COALESCE(SUM(sold), 0)
		FROM ledger_entries WHERE day BETWEEN $1 AND $2`
	var purchased, sold decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&purchased, &sold); err != nil {
		return 0, 0, fmt.Errorf("sum purchased/sold: %w", err)
	}
	return sumToInt(purchased), sumToInt(sold), nil
}

// SumExpired suma vencidos registrados en [from, to].
func (r *LedgerRepo) SumExpired(ctx context.Context, from, to time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(expired), 0) FROM ledger_entries WHERE day BETWEEN $1 AND $2`
	var expired decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&expired); err != nil {
		return 0, fmt.Errorf("sum expired: %w", err)
	}
	return sumToInt(expired), nil
}

// List lista las filas en [from, to] ordenadas por día.
func (r *LedgerRepo) List(ctx context.Context, from, to time.Time) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE day BETWEEN $1 AND $2 ORDER BY day`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.Day, &e.Purchased, &e.Sold, &e.Expired, &e.InInventory); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(&e.Day, &e.Purchased, &e.Sold, &e.Expired, &e.InInventory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
