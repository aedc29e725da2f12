// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"catalogrewrite/internal/models"
)

// Seed populates the database with the minimal catalog skeleton an import
// needs: the admin and default store views, the super-root and default root
// categories, and the url_key attribute. It is a no-op when stores exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM store").Scan(&count); err != nil {
		return fmt.Errorf("seed check stores: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	stmts := []struct {
		name  string
		query string
		args  []any
	}{
		{"websites", `INSERT INTO store_website (website_id, code, name) VALUES (0, 'admin', 'Admin'), (1, 'base', 'Main Website')`, nil},
		{"stores", `INSERT INTO store (store_id, code, website_id, root_category_id, name, is_active)
			VALUES ($1, $2, 0, 0, 'Admin', TRUE), (1, 'default', 1, 2, 'Default Store View', TRUE)`,
			[]any{models.AdminStoreID, models.AdminStoreCode}},
		{"categories", `INSERT INTO catalog_category_entity (entity_id, parent_id, path, is_anchor)
			VALUES ($1, 0, '1', TRUE), (2, $1, '1/2', TRUE)`,
			[]any{models.SuperRootCategoryID}},
		{"category names", `INSERT INTO catalog_category_store (entity_id, store_id, name_path, url_path)
			VALUES ($1, 0, 'Root Catalog', NULL), (2, 0, 'Default Category', NULL)`,
			[]any{models.SuperRootCategoryID}},
		{"url_key attribute", `INSERT INTO eav_attribute (entity_type_id, attribute_code) VALUES ($1, $2)`,
			[]any{models.ProductEntityTypeID, models.AttributeCodeURLKey}},
		{"sequences", `SELECT setval('catalog_category_entity_entity_id_seq', 2), setval('store_website_website_id_seq', 1)`, nil},
	}

	for _, s := range stmts {
		if _, err := tx.Exec(s.query, s.args...); err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default catalog skeleton",
		"stores", 2,
		"root_category_id", 2,
	)
	return nil
}
