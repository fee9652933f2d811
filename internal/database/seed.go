package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"blogsquare/internal/models"
)

// Seed fills an empty categories table with the built-in deck. A table
// that already has rows is left alone, so operator edits survive restarts.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Debug("categories present, skipping seed", "count", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (name, slug, image_url, image_alt, gradient, position)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("seed prepare: %w", err)
	}
	defer stmt.Close()

	deck := models.DefaultCategories()
	for _, c := range deck {
		if _, err := stmt.ExecContext(ctx, c.Name, c.Slug, c.ImageURL, c.ImageAlt, c.Gradient, c.Position); err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("seeded default categories", "count", len(deck))
	return nil
}
