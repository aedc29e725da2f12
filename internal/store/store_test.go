// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"catalogrewrite/internal/database"
	"catalogrewrite/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "catalog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "catalog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database, runs migrations and
// seeds the catalog skeleton. If the database is unavailable, the test is
// skipped. A cleanup function is registered to close the connection.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("failed to seed: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// createProduct inserts a product and removes it (and everything hanging
// off it) when the test finishes.
func createProduct(t *testing.T, db *sql.DB, sku string) int64 {
	t.Helper()
	db.Exec("DELETE FROM url_rewrite WHERE entity_type = 'product' AND entity_id IN (SELECT entity_id FROM catalog_product_entity WHERE sku = $1)", sku)
	db.Exec("DELETE FROM catalog_product_entity WHERE sku = $1", sku)

	var id int64
	if err := db.QueryRow("INSERT INTO catalog_product_entity (sku) VALUES ($1) RETURNING entity_id", sku).Scan(&id); err != nil {
		t.Fatalf("create product %s: %v", sku, err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM url_rewrite WHERE entity_type = 'product' AND entity_id = $1", id)
		db.Exec("DELETE FROM catalog_product_entity WHERE entity_id = $1", id)
	})
	return id
}

// createCategory inserts a category with an admin breadcrumb and url_path.
func createCategory(t *testing.T, db *sql.DB, parentID int64, namePath string, urlPath *string, anchor bool) int64 {
	t.Helper()
	db.Exec("DELETE FROM catalog_category_entity WHERE entity_id IN (SELECT entity_id FROM catalog_category_store WHERE store_id = 0 AND name_path = $1)", namePath)

	var id int64
	err := db.QueryRow(`INSERT INTO catalog_category_entity (parent_id, path, is_anchor)
		VALUES ($1, '', $2) RETURNING entity_id`, parentID, anchor).Scan(&id)
	if err != nil {
		t.Fatalf("create category %s: %v", namePath, err)
	}
	_, err = db.Exec(`INSERT INTO catalog_category_store (entity_id, store_id, name_path, url_path)
		VALUES ($1, $2, $3, $4)`, id, models.AdminStoreID, namePath, urlPath)
	if err != nil {
		t.Fatalf("create category %s name: %v", namePath, err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM catalog_category_entity WHERE entity_id = $1", id) })
	return id
}

func strPtr(s string) *string { return &s }
