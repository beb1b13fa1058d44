package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// isSerializationFailure verifica si un error es una falla de serialización (40001)
// o un deadlock (40P01); ambos se resuelven reintentando la transacción completa.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// sumToInt convierte el NUMERIC de SUM(bigint) (registrado vía pgx-shopspring-decimal) a int64.
func sumToInt(d decimal.Decimal) int64 {
	return d.IntPart()
}
