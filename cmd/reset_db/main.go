package main

import (
	"context"
	"os"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pg.Close()

	// Sessions and assignments go with their drivers and cars.
	_, err = pg.Pool().Exec(context.Background(),
		"TRUNCATE TABLE sessions, car_drivers, cars, drivers, manufacturers RESTART IDENTITY CASCADE")
	if err != nil {
		log.Error("failed to truncate tables", logger.Error(err))
		os.Exit(1)
	}
	log.Info("truncated sessions, car_drivers, cars, drivers and manufacturers")
}
