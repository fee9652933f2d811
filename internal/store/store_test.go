// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blogsquare/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogsquare")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogsquare")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database, runs migrations and
// seeds the default categories. If the database is unavailable, the test
// is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.Seed(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestCategoryStoreList(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(items))
	}
	for i, c := range items {
		if c.Position != i {
			t.Errorf("item %d: position %d, want ordered by position", i, c.Position)
		}
		if c.ImageURL == "" || c.Gradient == "" {
			t.Errorf("item %d: missing image or gradient: %+v", i, c)
		}
	}
}

func TestCategoryStoreListCancelled(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.List(ctx); err == nil {
		t.Error("expected error from a cancelled context")
	}
}
