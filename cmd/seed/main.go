// seed reproduce un archivo CSV de operaciones (compras y ventas) contra el almacenamiento
// configurado, pasando por los mismos casos de uso que la API.
//
// Uso: go run ./cmd/seed [-charset iso-8859-1] [ruta/operaciones.csv]
// Formato por línea: operacion,cantidad,fecha (operacion = compra|venta|purchase|sell).
// Las líneas vacías y las que empiezan con '#' se ignoran; una cabecera opcional también.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
	domaininv "github.com/jhoicas/perishable-inventory/internal/domain/inventory"
	"github.com/jhoicas/perishable-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/perishable-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/perishable-inventory/pkg/config"
	"github.com/jhoicas/perishable-inventory/pkg/logger"
)

type operation struct {
	line     int
	sell     bool
	quantity int64
	date     string
}

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV (utf-8 | iso-8859-1)")
	flag.Parse()
	csvPath := "operaciones.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(*charset, "iso-8859-1") || strings.EqualFold(*charset, "latin1") {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	ops, err := parseOperations(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	var runner inventory.TxRunner
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("apertura de SQLite")
		}
		defer db.Close()
		runner = sqlite.NewTxRunner(db)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		runner = postgres.NewTxRunner(pool, cfg.DB.MaxRetries, log.Component("postgres"))
	}

	shelfLife, err := domaininv.NewShelfLife(cfg.Inventory.ShelfLifeDays)
	if err != nil {
		log.Fatal().Err(err).Msg("vida útil inválida")
	}
	uc := inventory.NewTransactionUseCase(runner, shelfLife, log.Component("seed"))

	var applied, rejected int
	for _, op := range ops {
		day, err := domaininv.ParseDay(op.date)
		if err == nil {
			input := inventory.TransactionInput{Quantity: op.quantity, Date: day}
			if op.sell {
				_, err = uc.Sell(ctx, input)
			} else {
				_, err = uc.Purchase(ctx, input)
			}
		}
		if err != nil {
			rejected++
			log.Warn().Err(err).Int("line", op.line).Msg("operación rechazada")
			continue
		}
		applied++
	}

	fmt.Printf("Procesado %s: %d operaciones aplicadas, %d rechazadas\n", csvPath, applied, rejected)
}

func parseOperations(r io.Reader) ([]operation, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var ops []operation
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		kind := strings.ToLower(strings.TrimSpace(rec[0]))
		var sell bool
		switch kind {
		case "compra", "purchase":
		case "venta", "sell":
			sell = true
		case "operacion", "operación", "operation":
			continue // cabecera
		default:
			return nil, fmt.Errorf("línea %d: operación desconocida %q", line, rec[0])
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, rec[1])
		}
		ops = append(ops, operation{line: line, sell: sell, quantity: qty, date: strings.TrimSpace(rec[2])})
	}
}
