// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"catalogrewrite/internal/models"
)

// RewriteStore persists url rewrites.
type RewriteStore interface {
	FindByEntityTypeAndEntityIDAndStoreID(entityType string, entityID, storeID int64) ([]models.URLRewrite, error)
	FindByRequestPath(requestPath string, storeID int64) (*models.URLRewrite, error)
	Persist(r *models.URLRewrite) (int64, error)
	Delete(id int64) error
	DeleteBySKU(sku string) (int64, error)
}

// RelationStore persists rewrite/product/category relations.
type RelationStore interface {
	Load(urlRewriteID int64) (*models.URLRewriteProductCategory, error)
	Persist(rel *models.URLRewriteProductCategory) error
}

// Pass is the input of one reconciliation of a product in a store.
type Pass struct {
	ProductID  int64
	SKU        string
	Store      models.Store
	URLKey     string
	Candidates []models.URLRewrite
	Visible    bool
	Settings   Settings

	// OnError receives duplicate errors and returns nil to continue with
	// the next record. Without it duplicates are fatal.
	OnError func(err error, column string) error
}

// Result counts what a reconciliation did.
type Result struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Unchanged  int `json:"unchanged"`
	Redirected int `json:"redirected"`
	Deleted    int `json:"deleted"`
	Kept       int `json:"kept"`
	Skipped    int `json:"skipped"`
}

// Add accumulates o into r.
func (r *Result) Add(o Result) {
	r.Created += o.Created
	r.Updated += o.Updated
	r.Unchanged += o.Unchanged
	r.Redirected += o.Redirected
	r.Deleted += o.Deleted
	r.Kept += o.Kept
	r.Skipped += o.Skipped
}

// Writes returns the number of write operations issued.
func (r Result) Writes() int {
	return r.Created + r.Updated + r.Redirected + r.Deleted
}

// Reconciler diffs candidates against the persisted rewrites of a product
// and issues the writes that bring storage in line.
type Reconciler struct {
	rewrites   RewriteStore
	relations  RelationStore
	categories CategoryStore
	logger     *slog.Logger
}

// NewReconciler returns a Reconciler writing through the given stores.
func NewReconciler(rewrites RewriteStore, relations RelationStore, categories CategoryStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{rewrites: rewrites, relations: relations, categories: categories, logger: logger}
}

// pool holds the existing rewrites no candidate has claimed yet, in
// storage order.
type pool struct {
	items   []models.URLRewrite
	claimed []bool
}

// claim returns the first unclaimed rewrite of categoryID whose request
// path equals path case-insensitively, and marks it claimed.
func (p *pool) claim(categoryID int64, path string, categoryOf func(*models.URLRewrite) int64) *models.URLRewrite {
	for i := range p.items {
		if p.claimed[i] {
			continue
		}
		if categoryOf(&p.items[i]) == categoryID && strings.EqualFold(p.items[i].RequestPath, path) {
			p.claimed[i] = true
			return &p.items[i]
		}
	}
	return nil
}

func (p *pool) orphans() []models.URLRewrite {
	var out []models.URLRewrite
	for i := range p.items {
		if !p.claimed[i] {
			out = append(out, p.items[i])
		}
	}
	return out
}

// Reconcile brings the product's rewrites in pass.Store in line with
// pass.Candidates.
func (rc *Reconciler) Reconcile(pass Pass) (Result, error) {
	var res Result

	existing, err := rc.rewrites.FindByEntityTypeAndEntityIDAndStoreID(models.EntityTypeProduct, pass.ProductID, pass.Store.ID)
	if err != nil {
		return res, fmt.Errorf("load existing url rewrites: %w", err)
	}
	p := &pool{items: existing, claimed: make([]bool, len(existing))}

	rootID := pass.Store.RootCategoryID
	categoryOf := func(r *models.URLRewrite) int64 {
		if r.Metadata == nil || r.Metadata.CategoryID == 0 {
			return rootID
		}
		return r.Metadata.CategoryID
	}

	candidateCategories := make(map[int64]bool, len(pass.Candidates))
	for i := range pass.Candidates {
		c := pass.Candidates[i]
		categoryID := categoryOf(&c)
		candidateCategories[categoryID] = true

		var current *models.URLRewrite
		if match := p.claim(categoryID, c.RequestPath, categoryOf); match != nil {
			c.ID = match.ID
			c.Description = match.Description
			current = match
		}

		id, err := rc.persistCandidate(&c, current, &res)
		if err != nil {
			if rerr := rc.skipDuplicate(pass, err, &res); rerr != nil {
				return res, rerr
			}
			continue
		}

		// Root rewrites never get a category relation.
		if categoryID == rootID {
			continue
		}
		if err := rc.persistRelation(id, pass.ProductID, categoryID, &c); err != nil {
			if rerr := rc.skipDuplicate(pass, err, &res); rerr != nil {
				return res, rerr
			}
		}
	}

	for _, orphan := range p.orphans() {
		if err := rc.handleOrphan(pass, orphan, candidateCategories, &res); err != nil {
			if rerr := rc.skipDuplicate(pass, err, &res); rerr != nil {
				return res, rerr
			}
		}
	}
	return res, nil
}

// skipDuplicate routes a duplicate through pass.OnError and fails on anything else.
func (rc *Reconciler) skipDuplicate(pass Pass, err error, res *Result) error {
	var dup *DuplicateRewriteError
	if !errors.As(err, &dup) || pass.OnError == nil {
		return err
	}
	if rerr := pass.OnError(err, ColumnURLKey); rerr != nil {
		return rerr
	}
	res.Skipped++
	return nil
}

func (rc *Reconciler) persistCandidate(c, current *models.URLRewrite, res *Result) (int64, error) {
	if current != nil && c.Equal(current) {
		res.Unchanged++
		return current.ID, nil
	}

	id, err := rc.rewrites.Persist(c)
	if err != nil {
		return 0, rc.wrapPersist(c, err)
	}
	if current != nil {
		res.Updated++
	} else {
		res.Created++
	}
	return id, nil
}

func (rc *Reconciler) persistRelation(rewriteID, productID, categoryID int64, c *models.URLRewrite) error {
	rel := models.URLRewriteProductCategory{URLRewriteID: rewriteID, ProductID: productID, CategoryID: categoryID}

	current, err := rc.relations.Load(rewriteID)
	if err != nil {
		return fmt.Errorf("load url rewrite relation: %w", err)
	}
	if current != nil && *current == rel {
		return nil
	}
	if err := rc.relations.Persist(&rel); err != nil {
		return rc.wrapPersist(c, err)
	}
	return nil
}

func (rc *Reconciler) wrapPersist(r *models.URLRewrite, err error) error {
	if errors.Is(err, models.ErrDuplicate) {
		dup := &DuplicateRewriteError{RequestPath: r.RequestPath, StoreID: r.StoreID, Err: err}
		owner, lerr := rc.rewrites.FindByRequestPath(r.RequestPath, r.StoreID)
		if lerr != nil {
			rc.logger.Warn("failed to load owner of duplicate url rewrite",
				"request_path", r.RequestPath, "store_id", r.StoreID, "error", lerr)
		}
		dup.Owner = owner
		return dup
	}
	return fmt.Errorf("persist url rewrite %q: %w", r.RequestPath, err)
}

// handleOrphan redirects, deletes or keeps an existing rewrite no candidate
// reproduced. Invisible products lose their rewrites when clean-up is on;
// otherwise history turns orphans into 301 redirects.
func (rc *Reconciler) handleOrphan(pass Pass, orphan models.URLRewrite, candidateCategories map[int64]bool, res *Result) error {
	s := pass.Settings
	switch {
	case !pass.Visible && s.CleanUpURLRewrites:
		return rc.deleteOrphan(pass, orphan, res)
	case s.SaveRewritesHistory:
		return rc.redirectOrphan(pass, orphan, candidateCategories, res)
	case s.CleanUpURLRewrites:
		return rc.deleteOrphan(pass, orphan, res)
	}
	res.Kept++
	return nil
}

func (rc *Reconciler) deleteOrphan(pass Pass, orphan models.URLRewrite, res *Result) error {
	if err := rc.rewrites.Delete(orphan.ID); err != nil {
		return err
	}
	rc.logger.Warn("cleaned-up url rewrite",
		"request_path", orphan.RequestPath,
		"sku", pass.SKU,
		"store_id", pass.Store.ID,
	)
	res.Deleted++
	return nil
}

// redirectOrphan points orphan at the new request path of the category it
// was generated for, or at the root path when that category is no longer
// part of the product.
func (rc *Reconciler) redirectOrphan(pass Pass, orphan models.URLRewrite, candidateCategories map[int64]bool, res *Result) error {
	updated := orphan
	updated.RedirectType = models.RedirectPermanent

	var category *models.Category
	if orphan.Metadata != nil && candidateCategories[orphan.Metadata.CategoryID] {
		c, err := rc.categories.FindByID(orphan.Metadata.CategoryID, pass.Store.ID)
		if err != nil {
			return fmt.Errorf("load redirect category: %w", err)
		}
		if c == nil {
			rc.logger.Warn("category no longer available for url rewrite",
				"category_id", orphan.Metadata.CategoryID,
				"url_rewrite_id", orphan.ID,
			)
			updated.Metadata = nil
		} else if c.ID != pass.Store.RootCategoryID {
			category = c
		}
	}

	target, err := RequestPath(category, pass.URLKey, pass.Settings.URLSuffix, pass.Store.ID)
	if err != nil {
		return err
	}

	if target == orphan.TargetPath && orphan.RedirectType == models.RedirectPermanent {
		res.Unchanged++
		return nil
	}
	if target == orphan.RequestPath {
		rc.logger.Warn("new target path equals request path of url rewrite",
			"request_path", orphan.RequestPath,
			"url_rewrite_id", orphan.ID,
		)
		res.Kept++
		return nil
	}

	updated.TargetPath = target
	if _, err := rc.rewrites.Persist(&updated); err != nil {
		return rc.wrapPersist(&updated, err)
	}
	res.Redirected++
	return nil
}
