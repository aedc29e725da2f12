// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rewrite generates and reconciles the SEO url rewrites of products
// during a catalog import.
//
// An Engine is built once from its collaborators and hands out a Run per
// import. Rows are fed to Run.Process one at a time and pass a fixed
// pipeline: product lookup, admin value inheritance, optional clear of the
// SKU's rewrites, url key derivation, visibility recording and finally the
// per-store reconciliation. All rows of a SKU must reach the same Run in
// file order.
package rewrite

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"catalogrewrite/internal/models"
)

// ProductStore reads products.
type ProductStore interface {
	FindBySKU(sku string) (*models.Product, error)
	WebsiteCodes(productID int64) ([]string, error)
}

// StoreViewStore reads store views.
type StoreViewStore interface {
	FindByCode(code string) (*models.Store, error)
	List() ([]models.Store, error)
}

// URLKeyResolver makes a derived url key unique.
type URLKeyResolver interface {
	MakeUnique(base string, entityTypeID, storeID, entityID int64) (string, error)
}

// URLKeyWriter stores a derived url key on the product.
type URLKeyWriter interface {
	Upsert(code string, entityTypeID, storeID, entityID int64, value string) error
}

// Deps are the collaborators of an Engine. URLKeys and URLKeyWriter are
// optional; without URLKeys rows lacking a url_key fail.
type Deps struct {
	Products     ProductStore
	Stores       StoreViewStore
	Categories   CategoryStore
	Config       ConfigStore
	Rewrites     RewriteStore
	Relations    RelationStore
	URLKeys      URLKeyResolver
	URLKeyWriter URLKeyWriter
	Logger       *slog.Logger
}

// Options control a whole import.
type Options struct {
	// Strict turns every data error into a fatal one.
	Strict bool
	// Replace deletes all rewrites of a SKU before its first row is processed.
	Replace bool
	// Overrides take precedence over the stored catalog configuration.
	Overrides ConfigOverrides
	// Splitter explodes the categories and product_websites columns.
	Splitter Splitter
	// EntityTypeID is the EAV entity type of products.
	EntityTypeID int64
	// MaxCategoryDepth bounds the category parent walk.
	MaxCategoryDepth int
}

// Engine holds what every run of an import shares.
type Engine struct {
	deps       Deps
	opts       Options
	logger     *slog.Logger
	categories *CategoryResolver
	builder    *CandidateBuilder
	reconciler *Reconciler
	pipeline   Pipeline
}

// New validates deps, loads the root category set and returns an Engine.
func New(deps Deps, opts Options) (*Engine, error) {
	switch {
	case deps.Products == nil:
		return nil, errors.New("rewrite engine: product store is required")
	case deps.Stores == nil:
		return nil, errors.New("rewrite engine: store view store is required")
	case deps.Categories == nil:
		return nil, errors.New("rewrite engine: category store is required")
	case deps.Config == nil:
		return nil, errors.New("rewrite engine: config store is required")
	case deps.Rewrites == nil || deps.Relations == nil:
		return nil, errors.New("rewrite engine: rewrite and relation stores are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Splitter == nil {
		opts.Splitter = NewSplitter(',')
	}
	if opts.EntityTypeID == 0 {
		opts.EntityTypeID = models.ProductEntityTypeID
	}

	resolver, err := NewCategoryResolver(deps.Categories, opts.MaxCategoryDepth, logger)
	if err != nil {
		return nil, fmt.Errorf("rewrite engine: %w", err)
	}

	e := &Engine{
		deps:       deps,
		opts:       opts,
		logger:     logger,
		categories: resolver,
		builder:    NewCandidateBuilder(deps.Categories),
		reconciler: NewReconciler(deps.Rewrites, deps.Relations, deps.Categories, logger),
	}
	e.pipeline = e.stages()
	return e, nil
}

// stages returns the row pipeline.
func (e *Engine) stages() Pipeline {
	p := Pipeline{resolveProduct, inheritAdminRow}
	if e.opts.Replace {
		p = append(p, clearRewrites)
	}
	return append(p, resolveURLKey, rememberAdminRow, recordVisibility, dispatchStores)
}

// NewRun starts a new import run with its own state.
func (e *Engine) NewRun() *Run {
	id := uuid.NewString()
	return &Run{
		ID:         id,
		engine:     e,
		logger:     e.logger.With("run_id", id),
		visibility: NewVisibilityGate(),
		adminRows:  make(map[string]ProductRow),
		processed:  make(map[string]map[string]bool),
		cleared:    make(map[string]bool),
		report: &Report{
			RunID:     id,
			Strict:    e.opts.Strict,
			StartedAt: time.Now(),
		},
	}
}
