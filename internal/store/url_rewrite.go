// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// URLRewriteStore manages url_rewrite rows.
type URLRewriteStore struct {
	db DBTX
}

// NewURLRewriteStore returns a new URLRewriteStore.
func NewURLRewriteStore(db DBTX) *URLRewriteStore {
	return &URLRewriteStore{db: db}
}

const urlRewriteColumns = `url_rewrite_id, entity_type, entity_id, request_path, target_path,
	redirect_type, store_id, description, is_autogenerated, metadata`

const urlRewriteColumnsAliased = `r.url_rewrite_id, r.entity_type, r.entity_id, r.request_path, r.target_path,
	r.redirect_type, r.store_id, r.description, r.is_autogenerated, r.metadata`

// scanURLRewrite scans a row into a URLRewrite struct.
func scanURLRewrite(scanner interface{ Scan(...any) error }) (*models.URLRewrite, error) {
	var r models.URLRewrite
	var description, metadata sql.NullString
	err := scanner.Scan(
		&r.ID, &r.EntityType, &r.EntityID, &r.RequestPath, &r.TargetPath,
		&r.RedirectType, &r.StoreID, &description, &r.IsAutogenerated, &metadata,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		r.Description = &description.String
	}
	r.Metadata, err = models.DecodeMetadata(metadata.String)
	if err != nil {
		return nil, fmt.Errorf("rewrite %d: %w", r.ID, err)
	}
	return &r, nil
}

func (s *URLRewriteStore) list(query string, args ...any) ([]models.URLRewrite, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.URLRewrite
	for rows.Next() {
		r, err := scanURLRewrite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan url rewrite: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// FindByEntityTypeAndEntityIDAndStoreID returns the rewrites of one entity
// in one store, ordered by ID.
func (s *URLRewriteStore) FindByEntityTypeAndEntityIDAndStoreID(entityType string, entityID, storeID int64) ([]models.URLRewrite, error) {
	items, err := s.list(`SELECT `+urlRewriteColumns+` FROM url_rewrite
		WHERE entity_type = $1 AND entity_id = $2 AND store_id = $3
		ORDER BY url_rewrite_id`, entityType, entityID, storeID)
	if err != nil {
		return nil, fmt.Errorf("find url rewrites by entity: %w", err)
	}
	return items, nil
}

// FindBySKU returns every product rewrite of the product with the given SKU
// across all stores.
func (s *URLRewriteStore) FindBySKU(sku string) ([]models.URLRewrite, error) {
	items, err := s.list(`SELECT `+urlRewriteColumnsAliased+` FROM url_rewrite r
		JOIN catalog_product_entity p ON p.entity_id = r.entity_id
		WHERE r.entity_type = $1 AND p.sku = $2
		ORDER BY r.url_rewrite_id`, models.EntityTypeProduct, sku)
	if err != nil {
		return nil, fmt.Errorf("find url rewrites by sku: %w", err)
	}
	return items, nil
}

// FindByRequestPath returns the rewrite serving path in the given store, or
// nil if there is none.
func (s *URLRewriteStore) FindByRequestPath(requestPath string, storeID int64) (*models.URLRewrite, error) {
	r, err := scanURLRewrite(s.db.QueryRow(`SELECT `+urlRewriteColumns+` FROM url_rewrite
		WHERE request_path = $1 AND store_id = $2`, requestPath, storeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find url rewrite by request path: %w", err)
	}
	return r, nil
}

// Create inserts a new rewrite and returns its ID. A request path already
// taken in the store yields models.ErrDuplicate and leaves the surrounding
// transaction usable.
func (s *URLRewriteStore) Create(r *models.URLRewrite) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO url_rewrite (entity_type, entity_id, request_path, target_path,
			redirect_type, store_id, description, is_autogenerated, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (request_path, store_id) DO NOTHING
		RETURNING url_rewrite_id`,
		r.EntityType, r.EntityID, r.RequestPath, r.TargetPath,
		r.RedirectType, r.StoreID, r.Description, r.IsAutogenerated, models.EncodeMetadata(r.Metadata),
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("create url rewrite %q: %w", r.RequestPath, models.ErrDuplicate)
	}
	if err != nil {
		return 0, fmt.Errorf("create url rewrite %q: %w", r.RequestPath, mapDuplicate(err))
	}
	return id, nil
}

// Update rewrites every column of an existing rewrite. It runs inside a
// savepoint so a duplicate request path does not abort the transaction.
func (s *URLRewriteStore) Update(r *models.URLRewrite) error {
	err := savepoint(s.db, func() error {
		_, err := s.db.Exec(`
			UPDATE url_rewrite SET entity_type = $1, entity_id = $2, request_path = $3,
				target_path = $4, redirect_type = $5, store_id = $6, description = $7,
				is_autogenerated = $8, metadata = $9
			WHERE url_rewrite_id = $10`,
			r.EntityType, r.EntityID, r.RequestPath, r.TargetPath, r.RedirectType,
			r.StoreID, r.Description, r.IsAutogenerated, models.EncodeMetadata(r.Metadata), r.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update url rewrite %d: %w", r.ID, mapDuplicate(err))
	}
	return nil
}

// Persist creates the rewrite when it has no ID yet and updates it
// otherwise. It returns the rewrite's ID.
func (s *URLRewriteStore) Persist(r *models.URLRewrite) (int64, error) {
	if r.IsPersisted() {
		return r.ID, s.Update(r)
	}
	return s.Create(r)
}

// Delete removes a rewrite. Its category relation goes with it.
func (s *URLRewriteStore) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM url_rewrite WHERE url_rewrite_id = $1`, id); err != nil {
		return fmt.Errorf("delete url rewrite %d: %w", id, err)
	}
	return nil
}

// DeleteBySKU removes every product rewrite of the product with the given
// SKU and returns how many were deleted.
func (s *URLRewriteStore) DeleteBySKU(sku string) (int64, error) {
	res, err := s.db.Exec(`
		DELETE FROM url_rewrite r
		USING catalog_product_entity p
		WHERE p.entity_id = r.entity_id AND r.entity_type = $1 AND p.sku = $2`,
		models.EntityTypeProduct, sku)
	if err != nil {
		return 0, fmt.Errorf("delete url rewrites by sku: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
