package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de la cola de lotes sobre SQLite.
type BatchRepo struct {
	q querier
}

// NewBatchRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewBatchRepository(q querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) List(ctx context.Context) (entity.Batches, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT day, quantity FROM batches ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list entity.Batches
	for rows.Next() {
		var (
			day string
			b   entity.Batch
		)
		if err := rows.Scan(&day, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if b.Day, err = parseDay(day); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BatchRepo) Create(ctx context.Context, b entity.Batch) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO batches (day, quantity) VALUES (?, ?)`, formatDay(b.Day), b.Quantity)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) SetQuantity(ctx context.Context, day time.Time, quantity int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE batches SET quantity = ? WHERE day = ?`, quantity, formatDay(day))
	if err != nil {
		return fmt.Errorf("set batch quantity: %w", err)
	}
	return requireRow(res, "set batch quantity", day)
}

func (r *BatchRepo) Delete(ctx context.Context, days ...time.Time) error {
	if len(days) == 0 {
		return nil
	}
	args := make([]any, 0, len(days))
	for _, d := range days {
		args = append(args, formatDay(d))
	}
	query := `DELETE FROM batches WHERE day IN (` + placeholders(len(days)) + `)`
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete batches: %w", err)
	}
	return nil
}

func (r *BatchRepo) DeleteUpTo(ctx context.Context, cutoff time.Time) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM batches WHERE day <= ?`, formatDay(cutoff)); err != nil {
		return fmt.Errorf("delete expired batches: %w", err)
	}
	return nil
}

func (r *BatchRepo) Sum(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM batches WHERE day BETWEEN ? AND ?`,
		formatDay(from), formatDay(to)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum batches: %w", err)
	}
	return total, nil
}
