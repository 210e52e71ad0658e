package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lightcat/internal/model"
)

const productSchema = `
CREATE TABLE IF NOT EXISTS products (
	id            UUID PRIMARY KEY,
	run_id        UUID NOT NULL,
	sku           TEXT NOT NULL UNIQUE,
	parent_sku    TEXT,
	product_type  TEXT NOT NULL,
	manufacturer  TEXT NOT NULL,
	name          TEXT NOT NULL,
	regular_price NUMERIC(10, 2),
	payload       JSONB NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertProduct = `
INSERT INTO products
(id, run_id, sku, parent_sku, product_type, manufacturer, name, regular_price, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (sku) DO UPDATE SET
	run_id = EXCLUDED.run_id,
	parent_sku = EXCLUDED.parent_sku,
	product_type = EXCLUDED.product_type,
	manufacturer = EXCLUDED.manufacturer,
	name = EXCLUDED.name,
	regular_price = EXCLUDED.regular_price,
	payload = EXCLUDED.payload,
	updated_at = now()`

// ProductRepository stores reconciled products, one row per SKU.
type ProductRepository struct {
	DB *pgxpool.Pool
}

func (r *ProductRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, productSchema)
	return err
}

// productArgs returns the insert arguments of p, text fields made valid
// UTF-8 for the database encoding.
func productArgs(runID uuid.UUID, p model.Product) ([]any, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode product %s: %w", p.SKU, err)
	}
	var parent *string
	if p.ParentSKU != "" {
		parent = &p.ParentSKU
	}
	return []any{
		uuid.New(),
		runID,
		p.SKU,
		parent,
		string(p.Type),
		string(p.Manufacturer),
		strings.ToValidUTF8(p.Name, ""),
		p.RegularPrice,
		payload,
	}, nil
}

// SaveAll upserts products in one batch. Parents must come before their
// variations, which reconciliation output already guarantees.
func (r *ProductRepository) SaveAll(ctx context.Context, runID uuid.UUID, products []model.Product) error {
	if err := model.ValidateHierarchy(products); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for _, p := range products {
		args, err := productArgs(runID, p)
		if err != nil {
			return err
		}
		batch.Queue(upsertProduct, args...)
	}
	if err := r.DB.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

func (r *ProductRepository) scan(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var p model.Product
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Family returns a variable product followed by its variations, or the
// single simple product with that SKU.
func (r *ProductRepository) Family(ctx context.Context, sku string) ([]model.Product, error) {
	return r.scan(ctx, `
		SELECT payload FROM products
		WHERE sku = $1 OR parent_sku = $1
		ORDER BY parent_sku NULLS FIRST, sku
	`, sku)
}

func (r *ProductRepository) ByRun(ctx context.Context, runID uuid.UUID) ([]model.Product, error) {
	return r.scan(ctx, `
		SELECT payload FROM products
		WHERE run_id = $1
		ORDER BY COALESCE(parent_sku, sku), parent_sku NULLS FIRST, sku
	`, runID)
}
