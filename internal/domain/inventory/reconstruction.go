package inventory

import "time"

// ReconstructionWindows rangos de días de compra usados para reconstruir vencimientos
// e inventario al cierre de un período sin ejecutar un barrido.
//
// El barrido es diferido: solo corre al comprar o vender, y registra lo vencido contra
// el día de compra. Con snapshot = última fila con day <= end, todo lo comprado hasta
// Cutoff(snapshot.Day) ya fue barrido y registrado. Lo comprado después de ese corte y
// hasta Cutoff(end) está vencido lógicamente en end, pero sigue en la cola o fue barrido
// por una operación posterior a end.
type ReconstructionWindows struct {
	Journaled       DayRange // vencimientos ya registrados cuyo vencimiento cae en el período
	Pending         DayRange // vencidos en end y no barridos a la fecha del snapshot
	PendingInPeriod DayRange // parte de Pending cuyo vencimiento cae en el período
}

// Windows calcula los rangos para el período [start, end] y el día del snapshot.
func (s ShelfLife) Windows(start, end, snapshotDay time.Time) ReconstructionWindows {
	recorded := s.Cutoff(snapshotDay)
	periodFrom := s.Cutoff(start)
	pendingFrom := recorded.AddDate(0, 0, 1)
	pendingTo := s.Cutoff(end)

	inPeriodFrom := pendingFrom
	if periodFrom.After(inPeriodFrom) {
		inPeriodFrom = periodFrom
	}
	return ReconstructionWindows{
		Journaled:       DayRange{From: periodFrom, To: recorded},
		Pending:         DayRange{From: pendingFrom, To: pendingTo},
		PendingInPeriod: DayRange{From: inPeriodFrom, To: pendingTo},
	}
}

// PendingExpiry unidades vencidas lógicamente que el snapshot aún cuenta como inventario.
// Queued siguen en la cola; Journaled fueron barridas por una operación posterior a end.
type PendingExpiry struct {
	Queued    int64
	Journaled int64
}

// Total unidades pendientes.
func (p PendingExpiry) Total() int64 { return p.Queued + p.Journaled }

// ExpiryTotals inventario fresco y vencimientos reconstruidos al cierre del período.
type ExpiryTotals struct {
	InInventory int64
	Expired     int64
}

// Reconstruct combina el inventario del snapshot con los vencimientos registrados y pendientes.
// pending cubre Pending (todo lo vencido en end); pendingInPeriod solo PendingInPeriod.
func Reconstruct(snapshotInInventory, journaled int64, pending, pendingInPeriod PendingExpiry) ExpiryTotals {
	return ExpiryTotals{
		InInventory: snapshotInInventory - pending.Total(),
		Expired:     journaled + pendingInPeriod.Total(),
	}
}
