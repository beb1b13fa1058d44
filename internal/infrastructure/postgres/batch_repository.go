package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
	"github.com/jhoicas/perishable-inventory/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de la cola de lotes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q    Querier
	lock bool
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// ForUpdate devuelve una copia cuyo List bloquea los lotes (SELECT FOR UPDATE).
func (r *BatchRepo) ForUpdate() *BatchRepo {
	return &BatchRepo{q: r.q, lock: true}
}

// List obtiene todos los lotes ordenados por día de compra.
func (r *BatchRepo) List(ctx context.Context) (entity.Batches, error) {
	query := `SELECT day, quantity FROM batches ORDER BY day`
	if r.lock {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list entity.Batches
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.Day, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Create inserta un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, b entity.Batch) error {
	_, err := r.q.Exec(ctx, `INSERT INTO batches (day, quantity) VALUES ($1, $2)`, b.Day, b.Quantity)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// SetQuantity fija la cantidad restante de un lote existente.
func (r *BatchRepo) SetQuantity(ctx context.Context, day time.Time, quantity int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET quantity = $1 WHERE day = $2`, quantity, day)
	if err != nil {
		return fmt.Errorf("set batch quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set batch quantity %s: lote inexistente", day.Format(time.DateOnly))
	}
	return nil
}

// Delete elimina los lotes de los días indicados.
func (r *BatchRepo) Delete(ctx context.Context, days ...time.Time) error {
	if len(days) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM batches WHERE day = ANY($1::date[])`, days); err != nil {
		return fmt.Errorf("delete batches: %w", err)
	}
	return nil
}

// DeleteUpTo elimina los lotes con day <= cutoff.
func (r *BatchRepo) DeleteUpTo(ctx context.Context, cutoff time.Time) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batches WHERE day <= $1`, cutoff); err != nil {
		return fmt.Errorf("delete expired batches: %w", err)
	}
	return nil
}

// Sum suma las cantidades de los lotes en [from, to].
func (r *BatchRepo) Sum(ctx context.Context, from, to time.Time) (int64, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM batches WHERE day BETWEEN $1 AND $2`, from, to,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum batches: %w", err)
	}
	return sumToInt(total), nil
}
