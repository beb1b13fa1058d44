package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrOutOfOrder        = errors.New("la fecha no puede ser anterior al último día registrado")
	ErrInsufficientStock = errors.New("no se puede vender más que el stock fresco disponible")
)
