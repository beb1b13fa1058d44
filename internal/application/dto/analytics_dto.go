package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsRequest parámetros para GET /api/analytics y GET /api/inventory/records.
type AnalyticsRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD, obligatorio
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, obligatorio
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// AnalyticsDTO respuesta de GET /api/analytics.
type AnalyticsDTO struct {
	Purchased   int64  `json:"purchased"`
	Sold        int64  `json:"sold"`
	Profit      string `json:"profit"`      // precio × vendidos − costo × comprados, formato moneda
	InInventory int64  `json:"inInventory"` // stock fresco al cierre de end_date
	Expired     int64  `json:"expired"`     // unidades cuyo vencimiento cae en el período
}

// LedgerEntryDTO fila del libro diario.
type LedgerEntryDTO struct {
	Day         string `json:"day"`
	Purchased   int64  `json:"purchased"`
	Sold        int64  `json:"sold"`
	Expired     int64  `json:"expired"`
	InInventory int64  `json:"inInventory"`
}

// RecordsResponseDTO respuesta de GET /api/inventory/records.
type RecordsResponseDTO struct {
	Period  PeriodDTO        `json:"period"`
	Records []LedgerEntryDTO `json:"records"`
}
