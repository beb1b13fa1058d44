package inventory

import (
	"fmt"

	"github.com/jhoicas/perishable-inventory/internal/domain"
	"github.com/jhoicas/perishable-inventory/internal/domain/entity"
)

// Consumption cambios sobre la cola producidos por una venta FIFO.
type Consumption struct {
	Removed   entity.Batches // lotes consumidos por completo (se eliminan)
	Reduced   *entity.Batch  // lote parcialmente consumido con su cantidad resultante
	Remaining entity.Batches // cola resultante
}

// ConsumeFIFO consume quantity unidades empezando por el lote más antiguo.
// Los lotes cuyo acumulado (incluyéndose) es menor que quantity se eliminan; el siguiente
// se reduce por el remanente y se elimina si queda en cero.
func ConsumeFIFO(queue entity.Batches, quantity int64) (Consumption, error) {
	if quantity < 0 {
		return Consumption{}, fmt.Errorf("%w: cantidad negativa %d", domain.ErrInvalidInput, quantity)
	}
	if quantity > queue.Total() {
		return Consumption{}, fmt.Errorf("%w: solicitado %d, en cola %d", domain.ErrInsufficientStock, quantity, queue.Total())
	}
	var res Consumption
	if quantity == 0 {
		res.Remaining = append(entity.Batches{}, queue...)
		return res, nil
	}

	var running int64
	for i, b := range queue {
		running += b.Quantity
		if running < quantity {
			res.Removed = append(res.Removed, b)
			continue
		}
		left := running - quantity
		if left == 0 {
			res.Removed = append(res.Removed, b)
		} else {
			res.Reduced = &entity.Batch{Day: b.Day, Quantity: left}
			res.Remaining = append(res.Remaining, *res.Reduced)
		}
		res.Remaining = append(res.Remaining, queue[i+1:]...)
		break
	}
	return res, nil
}
