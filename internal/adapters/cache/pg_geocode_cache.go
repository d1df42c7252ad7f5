// Package cache provides a persistent geocode cache backed by Postgres.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
)

// PGGeocodeCache maps normalized queries to coordinates. Only geocoding facts
// are stored; planning results never touch this table.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// EnsureSchema creates the cache table if it does not exist.
func (c *PGGeocodeCache) EnsureSchema(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	_, err := c.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		lat   DOUBLE PRECISION NOT NULL,
		lon   DOUBLE PRECISION NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("geocode cache: create schema: %w", err)
	}
	return nil
}

// GetMany fetches cached coordinates for the given queries.
func (c *PGGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if c.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		uniq = append(uniq, q)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := c.DB.QueryContext(ctx, `
	SELECT query, lat, lon
	FROM geocode_cache
	WHERE query = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var q string
		var lat, lon float64
		if err := rows.Scan(&q, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan: %w", err)
		}
		out[q] = domain.Coordinates{Lat: lat, Lon: lon}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: rows: %w", err)
	}

	return out, nil
}

// PutMany stores query -> coordinate mappings, overwriting stale entries.
func (c *PGGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if c.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put geocode cache: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return fmt.Errorf("put geocode cache: prepare: %w", err)
	}
	defer stmt.Close()

	for q, coord := range results {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("put geocode cache: empty query key")
		}
		if _, err := stmt.ExecContext(ctx, q, coord.Lat, coord.Lon); err != nil {
			return fmt.Errorf("put geocode cache: insert %q: %w", q, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put geocode cache: commit: %w", err)
	}
	return nil
}
