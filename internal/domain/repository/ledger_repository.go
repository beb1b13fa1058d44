package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del libro diario (una fila por día).
// Los rangos de fechas son inclusivos en ambos extremos.
type LedgerRepository interface {
	// Latest devuelve la fila más reciente; (nil, nil) si el libro está vacío.
	// Dentro de una transacción de escritura bloquea la fila (SELECT FOR UPDATE).
	Latest(ctx context.Context) (*entity.LedgerEntry, error)
	// LatestOnOrBefore devuelve la última fila con day <= day; (nil, nil) si no existe.
	LatestOnOrBefore(ctx context.Context, day time.Time) (*entity.LedgerEntry, error)
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// Increment suma deltas a purchased, sold e in_inventory de la fila del día.
	Increment(ctx context.Context, day time.Time, purchased, sold, inventoryDelta int64) error
	// AddExpired acumula unidades vencidas sobre la fila del día de compra.
	AddExpired(ctx context.Context, day time.Time, quantity int64) error
	SumPurchasedSold(ctx context.Context, from, to time.Time) (purchased, sold int64, err error)
	SumExpired(ctx context.Context, from, to time.Time) (int64, error)
	List(ctx context.Context, from, to time.Time) ([]*entity.LedgerEntry, error)
}
