package inventory

import (
	"time"

	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
)

// SweepResult resultado del barrido de vencimientos sobre la cola de lotes.
type SweepResult struct {
	Expired    entity.Batches // lotes retirados; se registran contra su día de compra
	Remaining  entity.Batches // lotes frescos, en el mismo orden
	NumExpired int64
}

// Sweep separa los lotes con día de compra <= cutoff. Nunca falla: una cola vacía
// o sin lotes elegibles devuelve NumExpired = 0.
func Sweep(queue entity.Batches, cutoff time.Time) SweepResult {
	res := SweepResult{Remaining: make(entity.Batches, 0, len(queue))}
	for _, b := range queue {
		if !b.Day.After(cutoff) {
			res.Expired = append(res.Expired, b)
			res.NumExpired += b.Quantity
			continue
		}
		res.Remaining = append(res.Remaining, b)
	}
	return res
}
