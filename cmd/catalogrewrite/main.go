// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point of the catalog url rewrite importer.
// It loads configuration, connects to services and streams product import
// files through the rewrite engine inside one database transaction.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"catalogrewrite/internal/config"
	"catalogrewrite/internal/database"
)

func main() {
	app := &cli.App{
		Name:  "catalogrewrite",
		Usage: "generate and reconcile product url rewrites from catalog import files",
		Commands: []*cli.Command{
			importCommand(),
			configCommand(),
			cacheCommand(),
			runsCommand(),
			reportCommand(),
			rewritesCommand(),
		},
	}

	// Stop between rows on SIGINT or SIGTERM; the open transaction is rolled back.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration and installs the default logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Debug("configuration loaded",
		"env", cfg.Env,
		"strict", cfg.ImportStrict,
		"cache", cfg.CacheEnabled(),
	)
	return cfg, nil
}

// openDatabase connects to PostgreSQL and runs pending migrations. In
// development the catalog skeleton is seeded.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
