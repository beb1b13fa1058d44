package repository

import (
	"context"
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia de la cola de lotes.
type BatchRepository interface {
	// List devuelve todos los lotes ordenados por día ascendente.
	// Dentro de una transacción de escritura bloquea las filas (SELECT FOR UPDATE).
	List(ctx context.Context) (entity.Batches, error)
	Create(ctx context.Context, batch entity.Batch) error
	SetQuantity(ctx context.Context, day time.Time, quantity int64) error
	Delete(ctx context.Context, days ...time.Time) error
	// DeleteUpTo elimina los lotes con day <= cutoff.
	DeleteUpTo(ctx context.Context, cutoff time.Time) error
	// Sum suma las cantidades de los lotes con from <= day <= to.
	Sum(ctx context.Context, from, to time.Time) (int64, error)
}
