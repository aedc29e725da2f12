// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"fmt"
	"log/slog"

	"catalogrewrite/internal/models"
)

// DefaultMaxCategoryDepth bounds the parent walk of a single category.
const DefaultMaxCategoryDepth = 64

// CategoryStore reads categories as seen from a store.
type CategoryStore interface {
	FindByID(id, storeID int64) (*models.Category, error)
	FindByPath(path string, storeID int64) (*models.Category, error)
	RootCategories() ([]models.Category, error)
}

// CategoryResolver expands a row's category paths into the IDs of every
// category a rewrite is generated for.
type CategoryResolver struct {
	categories CategoryStore
	roots      map[int64]bool
	maxDepth   int
	logger     *slog.Logger
}

// NewCategoryResolver loads the root category set once and returns a
// resolver bound to it.
func NewCategoryResolver(categories CategoryStore, maxDepth int, logger *slog.Logger) (*CategoryResolver, error) {
	roots, err := categories.RootCategories()
	if err != nil {
		return nil, fmt.Errorf("load root categories: %w", err)
	}

	set := make(map[int64]bool, len(roots))
	for _, c := range roots {
		set[c.ID] = true
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCategoryDepth
	}
	return &CategoryResolver{categories: categories, roots: set, maxDepth: maxDepth, logger: logger}, nil
}

// isRoot reports whether id terminates a parent walk in store.
func (r *CategoryResolver) isRoot(id int64, store models.Store) bool {
	return id == store.RootCategoryID || id == models.SuperRootCategoryID || r.roots[id]
}

// Resolve returns the store's root category ID followed by the IDs of the
// categories the product is related to, without duplicates. Paths that do
// not resolve are passed to onError, which returns nil to skip the path.
func (r *CategoryResolver) Resolve(paths []string, store models.Store, settings Settings, onError func(error) error) ([]int64, error) {
	ids := []int64{store.RootCategoryID}
	if !settings.UseCategories || !settings.GenerateCategoryProductRewrites {
		return ids, nil
	}

	seen := map[int64]bool{store.RootCategoryID: true}
	for _, path := range paths {
		found, err := r.resolvePath(path, store, seen)
		if err != nil {
			if rerr := onError(err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		for _, id := range found {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// resolvePath returns the new IDs contributed by one path. Nothing is
// contributed when any category on the way up is missing.
func (r *CategoryResolver) resolvePath(path string, store models.Store, seen map[int64]bool) ([]int64, error) {
	c, err := r.categories.FindByPath(path, store.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &CategoryNotFoundError{Path: path, StoreID: store.ID}
	}

	var found []int64
	visited := make(map[int64]bool)
	topLevel := true
	for depth := 0; ; depth++ {
		if r.isRoot(c.ID, store) {
			return found, nil
		}
		if visited[c.ID] || depth >= r.maxDepth {
			return nil, fmt.Errorf("category %d: parent chain of %q does not reach a root", c.ID, path)
		}
		visited[c.ID] = true

		if !seen[c.ID] && !contains(found, c.ID) {
			if topLevel || c.IsAnchor {
				found = append(found, c.ID)
			} else {
				r.logger.Debug("no url rewrite for category without anchor flag",
					"category_id", c.ID, "path", c.Path)
			}
		}

		if r.isRoot(c.ParentID, store) || c.ParentID == 0 {
			return found, nil
		}
		parent, err := r.categories.FindByID(c.ParentID, store.ID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, &CategoryNotFoundError{ID: c.ParentID, StoreID: store.ID}
		}
		c = parent
		topLevel = false
	}
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
