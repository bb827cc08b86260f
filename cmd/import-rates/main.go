// README: Loads the toll tariff CSV into the toll_rates table of the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farely/internal/config"
	"farely/internal/infra"
	"farely/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	driver := flag.String("driver", cfg.Rates.Driver, "rate database driver: sqlite, postgres or mysql")
	dsn := flag.String("dsn", cfg.Rates.DSN, "rate database DSN (file path for sqlite)")
	csvPath := flag.String("csv", "data/Tariftoll_my.csv", "toll tariff CSV file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	var writer pricing.RateWriter
	switch *driver {
	case "postgres":
		pool, err := infra.NewDB(ctx, *dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		writer = pricing.NewStore(pool)
	case "sqlite", "mysql":
		db, err := infra.NewSQLDB(ctx, *driver, *dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		writer = pricing.NewSQLStore(db, pricing.Dialect(*driver))
	default:
		log.Fatalf("unsupported driver %q", *driver)
	}

	start := time.Now()
	n, err := pricing.ImportCSV(ctx, f, writer)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("imported %d toll rates from %s in %s", n, *csvPath, time.Since(start).Round(time.Millisecond))
}
