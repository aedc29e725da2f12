// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// StoreViewStore reads store views and their websites.
type StoreViewStore struct {
	db DBTX
}

// NewStoreViewStore returns a new StoreViewStore.
func NewStoreViewStore(db DBTX) *StoreViewStore {
	return &StoreViewStore{db: db}
}

const storeViewQuery = `
	SELECT s.store_id, s.code, w.code, s.root_category_id, s.is_active
	FROM store s
	JOIN store_website w ON w.website_id = s.website_id`

func scanStore(scanner interface{ Scan(...any) error }) (*models.Store, error) {
	var s models.Store
	if err := scanner.Scan(&s.ID, &s.Code, &s.WebsiteCode, &s.RootCategoryID, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByCode returns the store view with the given code, or nil if not found.
func (s *StoreViewStore) FindByCode(code string) (*models.Store, error) {
	st, err := scanStore(s.db.QueryRow(storeViewQuery+` WHERE s.code = $1`, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find store by code: %w", err)
	}
	return st, nil
}

// List returns every store view, admin included, ordered by ID.
func (s *StoreViewStore) List() ([]models.Store, error) {
	rows, err := s.db.Query(storeViewQuery + ` ORDER BY s.store_id`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var items []models.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// FindWebsiteID returns the ID of the website with the given code, or
// sql.ErrNoRows wrapped when there is none.
func (s *StoreViewStore) FindWebsiteID(code string) (int64, error) {
	var id int64
	if err := s.db.QueryRow(`SELECT website_id FROM store_website WHERE code = $1`, code).Scan(&id); err != nil {
		return 0, fmt.Errorf("find website %q: %w", code, err)
	}
	return id, nil
}
