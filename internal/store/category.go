// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// CategoryStore reads categories. Store-scoped values fall back to the admin
// store row when the store has no value of its own.
type CategoryStore struct {
	db DBTX
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryQuery = `
	SELECT e.entity_id, e.parent_id, e.is_anchor,
	       COALESCE(s.name_path, a.name_path, ''),
	       COALESCE(s.url_path, a.url_path)
	FROM catalog_category_entity e
	LEFT JOIN catalog_category_store a ON a.entity_id = e.entity_id AND a.store_id = 0
	LEFT JOIN catalog_category_store s ON s.entity_id = e.entity_id AND s.store_id = $1`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	var urlPath sql.NullString
	if err := scanner.Scan(&c.ID, &c.ParentID, &c.IsAnchor, &c.Path, &urlPath); err != nil {
		return nil, err
	}
	if urlPath.Valid {
		c.URLPath = &urlPath.String
	}
	return &c, nil
}

// FindByID returns the category as seen from the given store, or nil if
// not found.
func (s *CategoryStore) FindByID(id, storeID int64) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(categoryQuery+` WHERE e.entity_id = $2`, storeID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByPath returns the category whose admin breadcrumb matches path, as
// seen from the given store, or nil if not found.
func (s *CategoryStore) FindByPath(path string, storeID int64) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRow(categoryQuery+` WHERE a.name_path = $2 ORDER BY e.entity_id LIMIT 1`, storeID, path))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by path: %w", err)
	}
	return c, nil
}

// RootCategories returns every category directly below the super-root.
func (s *CategoryStore) RootCategories() ([]models.Category, error) {
	rows, err := s.db.Query(categoryQuery+` WHERE e.parent_id = $2 ORDER BY e.entity_id`,
		models.AdminStoreID, models.SuperRootCategoryID)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
