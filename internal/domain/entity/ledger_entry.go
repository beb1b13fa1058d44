package entity

import "time"

// LedgerEntry fila agregada por día calendario (tabla ledger_entries).
// Purchased, Sold y Expired solo se incrementan; Expired se acumula de forma diferida
// sobre el día de compra del lote cuando un barrido lo vence.
type LedgerEntry struct {
	Day         time.Time
	Purchased   int64
	Sold        int64
	Expired     int64
	InInventory int64 // stock fresco al cierre del día, antes de barridos futuros
}
