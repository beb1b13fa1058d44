package dto

// TransactionRequest body para POST /api/purchase y POST /api/sell.
// Quantity es puntero para distinguir "ausente" de cero; un número no entero o un
// string hace fallar el parseo del body.
type TransactionRequest struct {
	Quantity *int64 `json:"quantity"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// BatchDTO lote de la cola: día de compra y unidades restantes.
type BatchDTO struct {
	Day      string `json:"day"`
	Quantity int64  `json:"quantity"`
}

// StoreResponse respuesta de compra, venta y GET /api/inventory/store.
type StoreResponse struct {
	Store []BatchDTO `json:"store"`
}
