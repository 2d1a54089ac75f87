package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Speed10x/premiumSMM/internal/logger"
	"log/slog"
)

type chartRow struct {
	Platform  string `db:"platform"`
	Service   string `db:"service"`
	UnitPrice string `db:"unit_price"`
	UnitBasis string `db:"unit_basis"`
}

// LoadPostgres reads the price chart from the price_chart table.
func LoadPostgres(ctx context.Context, db *sqlx.DB) (*Catalog, error) {
	start := time.Now()
	var rows []chartRow
	err := db.SelectContext(ctx, &rows,
		`SELECT platform, service, unit_price, unit_basis FROM price_chart ORDER BY platform, service`)
	if err != nil {
		return nil, fmt.Errorf("catalog: select price_chart: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		basis, err := ParseUnitBasis(r.UnitBasis)
		if err != nil {
			return nil, fmt.Errorf("catalog: row %s/%s: %w", r.Platform, r.Service, err)
		}
		unitPrice, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("catalog: row %s/%s: bad unit_price: %w", r.Platform, r.Service, err)
		}
		entries = append(entries, Entry{
			Platform:  r.Platform,
			Service:   r.Service,
			UnitPrice: unitPrice,
			Basis:     basis,
		})
	}

	cat, err := New(entries)
	if err != nil {
		return nil, err
	}
	logger.SVCCatalog.Info("price chart loaded",
		slog.String("event", "catalog.load"),
		slog.String("source", "postgres"),
		slog.Int("entries", cat.Len()),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return cat, nil
}

// SeedPostgres fills an empty price_chart table with the built-in chart.
// A non-empty table is left untouched so operator price edits survive restarts.
func SeedPostgres(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM price_chart`); err != nil {
		return fmt.Errorf("catalog: count price_chart: %w", err)
	}
	if count > 0 {
		logger.SVCCatalog.Debug("price chart already seeded",
			slog.String("event", "catalog.seed"),
			slog.Int("entries", count),
		)
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range defaultEntries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO price_chart (platform, service, unit_price, unit_basis) VALUES ($1, $2, $3, $4)`,
			e.Platform, e.Service, e.UnitPrice.StringFixed(2), string(e.Basis),
		)
		if err != nil {
			return fmt.Errorf("catalog: seed %s/%s: %w", e.Platform, e.Service, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit seed tx: %w", err)
	}

	logger.SVCCatalog.Info("price chart seeded",
		slog.String("event", "catalog.seed"),
		slog.Int("entries", len(defaultEntries)),
	)
	return nil
}
