package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro diario sobre SQLite.
type LedgerRepo struct {
	q querier
}

// NewLedgerRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewLedgerRepository(q querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `day, purchased, sold, expired, in_inventory`

func (r *LedgerRepo) Latest(ctx context.Context) (*entity.LedgerEntry, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries ORDER BY day DESC LIMIT 1`)
	e, err := scanLedgerEntry(row)
	if err != nil {
		return nil, fmt.Errorf("get latest ledger entry: %w", err)
	}
	return e, nil
}

func (r *LedgerRepo) LatestOnOrBefore(ctx context.Context, day time.Time) (*entity.LedgerEntry, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE day <= ? ORDER BY day DESC LIMIT 1`, formatDay(day))
	e, err := scanLedgerEntry(row)
	if err != nil {
		return nil, fmt.Errorf("get ledger entry on or before: %w", err)
	}
	return e, nil
}

func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO ledger_entries (day, purchased, sold, expired, in_inventory) VALUES (?, ?, ?, ?, ?)`,
		formatDay(e.Day), e.Purchased, e.Sold, e.Expired, e.InInventory)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepo) Increment(ctx context.Context, day time.Time, purchased, sold, inventoryDelta int64) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE ledger_entries
		SET purchased = purchased + ?, sold = sold + ?, in_inventory = in_inventory + ?
		WHERE day = ?`,
		purchased, sold, inventoryDelta, formatDay(day))
	if err != nil {
		return fmt.Errorf("increment ledger entry: %w", err)
	}
	return requireRow(res, "increment ledger entry", day)
}

func (r *LedgerRepo) AddExpired(ctx context.Context, day time.Time, quantity int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE ledger_entries SET expired = expired + ? WHERE day = ?`, quantity, formatDay(day))
	if err != nil {
		return fmt.Errorf("add expired: %w", err)
	}
	return requireRow(res, "add expired", day)
}

func (r *LedgerRepo) SumPurchasedSold(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var purchased, sold int64
	err := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(purchased), 0), COALESCE(SUM(sold), 0)
		FROM ledger_entries WHERE day BETWEEN ? AND ?`,
		formatDay(from), formatDay(to)).Scan(&purchased, &sold)
	if err != nil {
		return 0, 0, fmt.Errorf("sum purchased/sold: %w", err)
	}
	return purchased, sold, nil
}

func (r *LedgerRepo) SumExpired(ctx context.Context, from, to time.Time) (int64, error) {
	var expired int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(expired), 0) FROM ledger_entries WHERE day BETWEEN ? AND ?`,
		formatDay(from), formatDay(to)).Scan(&expired)
	if err != nil {
		return 0, fmt.Errorf("sum expired: %w", err)
	}
	return expired, nil
}

func (r *LedgerRepo) List(ctx context.Context, from, to time.Time) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE day BETWEEN ? AND ? ORDER BY day`,
		formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLedgerEntry(row scanner) (*entity.LedgerEntry, error) {
	var (
		e   entity.LedgerEntry
		day string
	)
	if err := row.Scan(&day, &e.Purchased, &e.Sold, &e.Expired, &e.InInventory); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	parsed, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	e.Day = parsed
	return &e, nil
}

func requireRow(res sql.Result, op string, day time.Time) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: fila inexistente", op, formatDay(day))
	}
	return nil
}
