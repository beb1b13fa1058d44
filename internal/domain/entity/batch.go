package entity

import "time"

// Batch lote de compra aún no vendido ni vencido (tabla batches), uno por día de compra.
type Batch struct {
	Day      time.Time
	Quantity int64
}

// Batches cola de lotes ordenada ascendentemente por día de compra.
type Batches []Batch

// Total suma las cantidades de todos los lotes.
func (b Batches) Total() int64 {
	var total int64
	for _, batch := range b {
		total += batch.Quantity
	}
	return total
}

// Find devuelve el índice del lote del día indicado, o -1 si no existe.
func (b Batches) Find(day time.Time) int {
	for i, batch := range b {
		if batch.Day.Equal(day) {
			return i
		}
	}
	return -1
}
