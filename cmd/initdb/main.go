package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/eklimov/order-management-api/internal/config"
	"github.com/eklimov/order-management-api/internal/logx"
	"github.com/eklimov/order-management-api/internal/postgres"
)

// initdb waits for the database, applies migrations and seeds the lookup
// tables plus the administrator client.
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

	log, closeLog := logx.New(cfg.Log, cfg.Service.Name+"-initdb")
	defer closeLog()

	ctx := context.Background()

	db, err := postgres.ConnectWait(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database never became ready")
	}
	defer db.Close()
	log.Info().Msg("database is ready")

	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("schema is up to date")

	if err := postgres.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("lookup tables and administrator client seeded")
}
