package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/config"
	"leadqual-engine/internal/engine"
	"leadqual-engine/internal/logging"
	"leadqual-engine/internal/oracle"
	"leadqual-engine/internal/secrets"
	"leadqual-engine/internal/store"
)

// app holds the wired-up engine for one command invocation.
type app struct {
	settings config.Settings
	rules    *config.RuleTables
	caches   *cachestore.Store
	eng      *engine.Engine
	db       *sqlx.DB
	log      *slog.Logger
	dataDir  string
}

func newApp() (*app, error) {
	dataDir := flagDataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.EnsureSettings(dataDir)
		if err != nil {
			return nil, fmt.Errorf("config bootstrap: %w", err)
		}
		cfgPath = p
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	if err := config.Validate(settings); err != nil {
		return nil, err
	}

	level := settings.Logging.Level
	if flagDebug {
		level = "debug"
	}
	log := logging.New(level, settings.Logging.Format)

	rules := config.LoadRules(filepath.Join(dataDir, "config"), log)
	caches := cachestore.Open(filepath.Join(dataDir, "cache"), log)

	client, err := oracle.New(oracle.Config{
		APIKey:            secrets.OracleAPIKey(),
		Model:             settings.Oracle.Model,
		BaseURL:           settings.Oracle.BaseURL,
		RequestsPerWindow: settings.Oracle.RequestsPerWindow,
		Window:            time.Duration(settings.Oracle.WindowSeconds) * time.Second,
		MaxRetries:        settings.Oracle.MaxRetries,
		BackoffStep:       time.Duration(settings.Oracle.BackoffSeconds * float64(time.Second)),
		CeilingRPS:        settings.Oracle.CeilingRPS,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("oracle client: %w", err)
	}

	db, err := store.Open(filepath.Join(dataDir, settings.Output.Database))
	if err != nil {
		return nil, fmt.Errorf("results db: %w", err)
	}

	return &app{
		settings: settings,
		rules:    rules,
		caches:   caches,
		eng:      engine.New(rules, caches, client, log),
		db:       db,
		log:      log,
		dataDir:  dataDir,
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *app) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(a.dataDir, rel)
}
