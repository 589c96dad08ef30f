package main

import (
	"database/sql"
	"fmt"

	"device_inventory/internal/config"
	"device_inventory/internal/events"
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/repository"
	"device_inventory/internal/repository/db"
	"device_inventory/internal/service"
)

// app holds the dependencies every subcommand shares.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sql.DB
	repos    *repository.Repository
	metrics  *metrics.Metrics
	pub      events.Publisher
	services *service.Service
}

// newApp loads config, opens the database and wires the service layer.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.Get(logger.Options{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	pub, err := events.NewPublisher(events.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}, log)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init publisher: %w", err)
	}

	m := metrics.New()
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, pub, log, m, service.Options{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Export: service.ExporterOptions{
			Dir:            cfg.Export.Dir,
			ApplyDateRange: cfg.Export.ApplyDateRange,
			DateField:      cfg.Export.DateField,
		},
		IdleTTL: cfg.Session.IdleTTL,
	})

	return &app{
		cfg:      cfg,
		log:      log,
		db:       conn,
		repos:    repos,
		metrics:  m,
		pub:      pub,
		services: services,
	}, nil
}

func (a *app) Close() {
	if err := a.pub.Close(); err != nil {
		a.log.Warnw("publisher_close_failed", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Errorw("sqlite_close_failed", "err", err)
	}
	_ = a.log.Sync()
}
