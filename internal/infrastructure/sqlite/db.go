// Package sqlite implementa los puertos de persistencia sobre SQLite (modernc.org/sqlite,
// sin cgo). Usa una sola conexión: todas las transacciones quedan serializadas, lo que
// cubre el aislamiento requerido por compras y ventas. Se usa para ejecución local y tests
// (":memory:").
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // driver SQLite en Go puro
)

// Los días se guardan como TEXT YYYY-MM-DD; el orden lexicográfico coincide con el cronológico.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
    day          TEXT PRIMARY KEY,
    purchased    INTEGER NOT NULL DEFAULT 0 CHECK (purchased >= 0),
    sold         INTEGER NOT NULL DEFAULT 0 CHECK (sold >= 0),
    expired      INTEGER NOT NULL DEFAULT 0 CHECK (expired >= 0),
    in_inventory INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS batches (
    day      TEXT PRIMARY KEY,
    quantity INTEGER NOT NULL CHECK (quantity > 0)
);`

// querier lo implementan *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB conexión SQLite con el esquema migrado.
type DB struct {
	conn *sql.DB
}

// Open abre (o crea) la base en path y migra el esquema. Usar ":memory:" para una base efímera.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: ":memory:" es por conexión y las escrituras quedan serializadas.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close cierra la conexión.
func (db *DB) Close() error {
	return db.conn.Close()
}

func formatDay(day time.Time) string {
	return day.Format(time.DateOnly)
}

func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("día almacenado inválido %q: %w", s, err)
	}
	return day, nil
}

// placeholders devuelve "?, ?, ..." con n marcadores.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
