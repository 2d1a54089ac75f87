// Package bootstrap brings up the infrastructure the bot needs before it can
// serve updates: the logger, then the price catalog from whichever source is
// configured, connecting and migrating Postgres when the chart lives there.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"github.com/Speed10x/premiumSMM/internal/catalog"
	"github.com/Speed10x/premiumSMM/internal/config"
	"github.com/Speed10x/premiumSMM/internal/database"
	"github.com/Speed10x/premiumSMM/internal/logger"
)

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Catalog *catalog.Catalog
	// DB is nil unless the catalog is database-backed.
	DB *sqlx.DB
}

// Close releases the database handle if one was opened.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and loads the price catalog.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.SVCCatalog.LogAttrs(ctx, slog.LevelInfo, "catalog loaded",
		slog.String("event", "catalog.loaded"),
		slog.String("source", cfg.Catalog.Source),
		slog.Int("entries", res.Catalog.Len()),
	)
	return res, nil
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		cat, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: catalog load failed: %w", err)
		}
		return &Result{Catalog: cat}, nil

	case config.CatalogSourcePostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}
		if err := database.RunMigrations(cfg.Database); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		if err := catalog.SeedPostgres(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: catalog seed failed: %w", err)
		}
		cat, err := catalog.LoadPostgres(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: catalog load failed: %w", err)
		}
		return &Result{Catalog: cat, DB: db}, nil

	default:
		return &Result{Catalog: catalog.Default()}, nil
	}
}
