package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eklimov/order-management-api/internal/config"
	"github.com/eklimov/order-management-api/internal/httpx"
	"github.com/eklimov/order-management-api/internal/logx"
	"github.com/eklimov/order-management-api/internal/orders"
	"github.com/eklimov/order-management-api/internal/postgres"
	"github.com/eklimov/order-management-api/internal/redisx"
)

func main() {
	configPath := flag.String("config", "setting.yaml", "path to the configuration file")
	flag.Parse()

	_ = godotenv.Load()

	provider, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	cfg := provider.Current()

	log, closeLog := logx.New(cfg.Log, cfg.Service.Name)
	defer closeLog()

	provider.Watch(
		func(*config.Config) { log.Info().Msg("configuration reloaded") },
		func(err error) { log.Error().Err(err).Msg("configuration reload failed, keeping previous snapshot") },
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		log.Info().Msg("schema is up to date")
	}

	// Service & handler
	service := orders.NewService(orders.NewPGStore(db), log)
	oh := &httpx.OrdersHandler{Service: service, Log: log}

	var extra []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		rdb := redisx.New(cfg.Redis.Addr)
		defer rdb.Close()
		limiter := httpx.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, log)
		extra = append(extra, limiter.Middleware)
	}

	router := httpx.NewRouter(cfg.Service, log, cfg.HTTP.RequestTimeout, extra...)
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
