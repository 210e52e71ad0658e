package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"lightcat/internal/model"
)

// Sync status of a stored scrape: pending reconciliation or done.
const (
	StatusPending   = "S"
	StatusProcessed = "N"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS site_snapshots (
	id          UUID PRIMARY KEY,
	slug        TEXT NOT NULL,
	language    TEXT NOT NULL,
	source_url  TEXT NOT NULL,
	payload     JSONB NOT NULL,
	sync_status CHAR(1) NOT NULL DEFAULT 'S',
	scraped_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (slug, language)
)`

// SnapshotRepository keeps raw site scrapes so reconciliation can be rerun
// without fetching pages again.
type SnapshotRepository struct {
	DB *sql.DB
}

func (r *SnapshotRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, snapshotSchema)
	return err
}

func (r *SnapshotRepository) Save(ctx context.Context, s model.SiteScrape) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", s.Slug, err)
	}

	var exists bool
	err = r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM site_snapshots WHERE slug = $1 AND language = $2)",
		s.Slug, s.Language,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE site_snapshots
			SET source_url = $1, payload = $2, sync_status = $3, scraped_at = now()
			WHERE slug = $4 AND language = $5
		`, s.SourceURL, payload, StatusPending, s.Slug, s.Language)
	} else {
		_, err = r.DB.ExecContext(ctx, `
			INSERT INTO site_snapshots
			(id, slug, language, source_url, payload, sync_status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), s.Slug, s.Language, s.SourceURL, payload, StatusPending)
	}
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", s.Slug, err)
	}
	return nil
}

// Pending lists scrapes not yet reconciled.
func (r *SnapshotRepository) Pending(ctx context.Context) ([]model.SiteScrape, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT payload
		FROM site_snapshots
		WHERE sync_status = $1
		ORDER BY scraped_at
	`, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.SiteScrape
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var s model.SiteScrape
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SnapshotRepository) MarkAsProcessed(ctx context.Context, slug, language string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE site_snapshots
		SET sync_status = $1
		WHERE slug = $2 AND language = $3
	`, StatusProcessed, slug, language)
	return err
}
