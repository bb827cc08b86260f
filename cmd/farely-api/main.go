// README: Entry point; loads config, wires rate storage, cache, and pricing, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"farely/internal/config"
	httptransport "farely/internal/http"
	"farely/internal/infra"
	"farely/internal/maps"
	"farely/internal/modules/pricing"
	"farely/internal/modules/vehicle"
)

type rateStore interface {
	pricing.RateLookup
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := vehicle.LoadCatalog(cfg.Vehicles.File)
	if err != nil {
		log.Fatalf("vehicle catalog: %v", err)
	}

	store, closeStore, err := openRateStore(ctx, cfg)
	if err != nil {
		log.Fatalf("rate store: %v", err)
	}
	defer closeStore()

	var cache pricing.RateCache
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		cache = pricing.NewRedisCache(redisClient)
	} else {
		cache = pricing.NewMemoryCache()
	}
	rates := pricing.NewCachedLookup(store, cache, cfg.Pricing.CacheTTL)
	pricingSvc := pricing.NewService(rates, catalog, cfg.Pricing.LookupWorkers)

	deps := httptransport.RouterDeps{
		Pricing:   pricingSvc,
		Catalog:   catalog,
		Readiness: store,
	}
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		deps.Routes = routeSvc
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(httptransport.NewRouter(deps))

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("farely listening on %s (rates=%s, workers=%d)", cfg.HTTP.Addr, cfg.Rates.Driver, cfg.Pricing.LookupWorkers)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openRateStore(ctx context.Context, cfg config.Config) (rateStore, func(), error) {
	if cfg.Rates.Driver == "postgres" {
		pool, err := infra.NewDB(ctx, cfg.Rates.DSN)
		if err != nil {
			return nil, nil, err
		}
		return pricing.NewStore(pool), pool.Close, nil
	}
	db, err := infra.NewSQLDB(ctx, cfg.Rates.Driver, cfg.Rates.DSN)
	if err != nil {
		return nil, nil, err
	}
	return pricing.NewSQLStore(db, pricing.Dialect(cfg.Rates.Driver)), func() { _ = db.Close() }, nil
}
