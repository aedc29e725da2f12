// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogrewrite/internal/models"
)

// URLRewriteProductCategoryStore manages the rewrite/product/category relation.
type URLRewriteProductCategoryStore struct {
	db DBTX
}

// NewURLRewriteProductCategoryStore returns a new URLRewriteProductCategoryStore.
func NewURLRewriteProductCategoryStore(db DBTX) *URLRewriteProductCategoryStore {
	return &URLRewriteProductCategoryStore{db: db}
}

// Load returns the relation of the given rewrite, or nil if there is none.
func (s *URLRewriteProductCategoryStore) Load(urlRewriteID int64) (*models.URLRewriteProductCategory, error) {
	var rel models.URLRewriteProductCategory
	err := s.db.QueryRow(`
		SELECT url_rewrite_id, product_id, category_id
		FROM catalog_url_rewrite_product_category
		WHERE url_rewrite_id = $1`, urlRewriteID,
	).Scan(&rel.URLRewriteID, &rel.ProductID, &rel.CategoryID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load url rewrite relation: %w", err)
	}
	return &rel, nil
}

// Persist creates or replaces the relation of rel.URLRewriteID. A failed
// write leaves the surrounding transaction usable.
func (s *URLRewriteProductCategoryStore) Persist(rel *models.URLRewriteProductCategory) error {
	err := savepoint(s.db, func() error {
		_, err := s.db.Exec(`
			INSERT INTO catalog_url_rewrite_product_category (url_rewrite_id, product_id, category_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (url_rewrite_id)
			DO UPDATE SET product_id = EXCLUDED.product_id, category_id = EXCLUDED.category_id`,
			rel.URLRewriteID, rel.ProductID, rel.CategoryID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("persist url rewrite relation %d: %w", rel.URLRewriteID, mapDuplicate(err))
	}
	return nil
}
