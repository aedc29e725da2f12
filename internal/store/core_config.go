// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// CoreConfigStore manages catalog configuration in core_config_data.
// Values resolve from the store view scope, then its website, then the
// default scope.
type CoreConfigStore struct {
	db DBTX
}

// NewCoreConfigStore returns a new CoreConfigStore backed by the given database.
func NewCoreConfigStore(db DBTX) *CoreConfigStore {
	return &CoreConfigStore{db: db}
}

// Get returns the value of path as seen from the given store view, or the
// fallback if no scope sets it. Empty values inherit from the next scope.
func (s *CoreConfigStore) Get(path string, storeID int64, fallback string) (string, error) {
	var val string
	err := s.db.QueryRow(`
		SELECT c.value FROM core_config_data c
		WHERE c.path = $1 AND c.value IS NOT NULL AND c.value <> '' AND (
			(c.scope = $2 AND c.scope_id = $4)
			OR (c.scope = $3 AND c.scope_id = (SELECT website_id FROM store WHERE store_id = $4))
			OR (c.scope = $5 AND c.scope_id = 0))
		ORDER BY CASE c.scope WHEN $2 THEN 0 WHEN $3 THEN 1 ELSE 2 END
		LIMIT 1`,
		path, models.ScopeStores, models.ScopeWebsites, storeID, models.ScopeDefault,
	).Scan(&val)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("get config %s: %w", path, err)
	}
	return val, nil
}

// Set upserts a single value at the default scope.
func (s *CoreConfigStore) Set(path, value string) error {
	return s.SetScoped(models.ScopeDefault, 0, path, value)
}

// SetScoped upserts a single value at the given scope.
func (s *CoreConfigStore) SetScoped(scope string, scopeID int64, path, value string) error {
	switch scope {
	case models.ScopeDefault:
		scopeID = 0
	case models.ScopeWebsites, models.ScopeStores:
	default:
		return fmt.Errorf("set config %s: unknown scope %q", path, scope)
	}

	_, err := s.db.Exec(`
		INSERT INTO core_config_data (scope, scope_id, path, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (scope, scope_id, path)
		DO UPDATE SET value = EXCLUDED.value`,
		scope, scopeID, path, value,
	)
	if err != nil {
		return fmt.Errorf("set config %s: %w", path, err)
	}
	return nil
}

// All returns every entry ordered by path and scope.
func (s *CoreConfigStore) All() ([]models.CoreConfig, error) {
	rows, err := s.db.Query(`
		SELECT scope, scope_id, path, COALESCE(value, '')
		FROM core_config_data
		ORDER BY path, CASE scope WHEN 'default' THEN 0 WHEN 'websites' THEN 1 ELSE 2 END, scope_id`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()

	var items []models.CoreConfig
	for rows.Next() {
		var c models.CoreConfig
		if err := rows.Scan(&c.Scope, &c.ScopeID, &c.Path, &c.Value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
