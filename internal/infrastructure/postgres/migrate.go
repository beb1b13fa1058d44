package postgres

import (
	"context"
	"fmt"
)

// schema tablas del libro diario y de la cola de lotes, ambas indexadas por día
// para los escaneos por rango.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    day          DATE PRIMARY KEY,
    purchased    BIGINT NOT NULL DEFAULT 0 CHECK (purchased >= 0),
    sold         BIGINT NOT NULL DEFAULT 0 CHECK (sold >= 0),
    expired      BIGINT NOT NULL DEFAULT 0 CHECK (expired >= 0),
    in_inventory BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS batches (
    day      DATE PRIMARY KEY,
    quantity BIGINT NOT NULL CHECK (quantity > 0)
);`

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
