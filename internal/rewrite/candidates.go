// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"strconv"

	"catalogrewrite/internal/models"
)

// productTargetPath is the internal route of a product page.
const productTargetPath = "catalog/product/view/id/"

// CandidateBuilder materializes the rewrites a product should have in a store.
type CandidateBuilder struct {
	categories CategoryStore
}

// NewCandidateBuilder returns a builder reading url paths from categories.
func NewCandidateBuilder(categories CategoryStore) *CandidateBuilder {
	return &CandidateBuilder{categories: categories}
}

// Build returns one candidate per category ID. Invisible products get none.
func (b *CandidateBuilder) Build(productID int64, urlKey string, store models.Store, categoryIDs []int64, settings Settings, visible bool) ([]models.URLRewrite, error) {
	if !visible {
		return nil, nil
	}

	out := make([]models.URLRewrite, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		var category *models.Category
		if id != store.RootCategoryID {
			c, err := b.category(id, store)
			if err != nil {
				return nil, err
			}
			category = c
		}

		requestPath, err := RequestPath(category, urlKey, settings.URLSuffix, store.ID)
		if err != nil {
			return nil, err
		}

		r := models.URLRewrite{
			EntityType:      models.EntityTypeProduct,
			EntityID:        productID,
			RequestPath:     requestPath,
			TargetPath:      TargetPath(productID, category),
			RedirectType:    models.RedirectNone,
			StoreID:         store.ID,
			IsAutogenerated: true,
		}
		if category != nil {
			r.Metadata = &models.Metadata{CategoryID: category.ID}
		}
		out = append(out, r)
	}
	return out, nil
}

func (b *CandidateBuilder) category(id int64, store models.Store) (*models.Category, error) {
	c, err := b.categories.FindByID(id, store.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &CategoryNotFoundError{ID: id, StoreID: store.ID}
	}
	return c, nil
}

// RequestPath returns the public path of a product under category. A nil
// category means the store's root category.
func RequestPath(category *models.Category, urlKey, suffix string, storeID int64) (string, error) {
	if category == nil {
		return urlKey + suffix, nil
	}
	if !category.HasURLPath() {
		return "", &MissingURLPathError{CategoryID: category.ID, StoreID: storeID}
	}
	return *category.URLPath + "/" + urlKey + suffix, nil
}

// TargetPath returns the internal route of a product under category. A nil
// category means the store's root category.
func TargetPath(productID int64, category *models.Category) string {
	path := productTargetPath + strconv.FormatInt(productID, 10)
	if category != nil {
		path += "/category/" + strconv.FormatInt(category.ID, 10)
	}
	return path
}
