// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"io"
	"log/slog"
	"sort"
	"strconv"
	"testing"

	"catalogrewrite/internal/models"
)

// discardLogger drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memRow is an in-memory Row.
type memRow struct {
	values map[string]string
	line   int
	file   string
}

func row(line int, kv ...string) *memRow {
	r := &memRow{values: map[string]string{}, line: line, file: "products.csv"}
	for i := 0; i+1 < len(kv); i += 2 {
		r.values[kv[i]] = kv[i+1]
	}
	return r
}

func (r *memRow) Value(column string) string { return r.values[column] }
func (r *memRow) Has(column string) bool     { _, ok := r.values[column]; return ok }
func (r *memRow) Line() int                  { return r.line }
func (r *memRow) File() string               { return r.file }

// memProducts is an in-memory ProductStore.
type memProducts struct {
	bySKU    map[string]models.Product
	websites map[int64][]string
}

func (m *memProducts) FindBySKU(sku string) (*models.Product, error) {
	p, ok := m.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProducts) WebsiteCodes(productID int64) ([]string, error) {
	return m.websites[productID], nil
}

// memStores is an in-memory StoreViewStore.
type memStores struct {
	stores []models.Store
}

func (m *memStores) FindByCode(code string) (*models.Store, error) {
	for _, s := range m.stores {
		if s.Code == code {
			st := s
			return &st, nil
		}
	}
	return nil, nil
}

func (m *memStores) List() ([]models.Store, error) {
	return append([]models.Store(nil), m.stores...), nil
}

// memCategories is an in-memory CategoryStore. Categories look the same
// from every store.
type memCategories struct {
	byID  map[int64]models.Category
	roots []int64
}

func (m *memCategories) add(id, parent int64, path, urlPath string, anchor bool) {
	c := models.Category{ID: id, ParentID: parent, Path: path, IsAnchor: anchor}
	if urlPath != "" {
		u := urlPath
		c.URLPath = &u
	}
	m.byID[id] = c
}

func (m *memCategories) FindByID(id, storeID int64) (*models.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCategories) FindByPath(path string, storeID int64) (*models.Category, error) {
	for _, c := range m.byID {
		if c.Path == path {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memCategories) RootCategories() ([]models.Category, error) {
	var out []models.Category
	for _, id := range m.roots {
		out = append(out, m.byID[id])
	}
	return out, nil
}

// memConfig is an in-memory ConfigStore. Keys made with storeKey hold store
// view values; plain paths hold the default.
type memConfig map[string]string

func storeKey(path string, storeID int64) string {
	return path + "@" + strconv.FormatInt(storeID, 10)
}

func (m memConfig) Get(key string, storeID int64, fallback string) (string, error) {
	if v := m[storeKey(key, storeID)]; v != "" {
		return v, nil
	}
	if v := m[key]; v != "" {
		return v, nil
	}
	return fallback, nil
}

// memRewrites is an in-memory RewriteStore enforcing the unique
// (request_path, store_id) key. Deleting a rewrite drops its relation.
type memRewrites struct {
	byID      map[int64]models.URLRewrite
	nextID    int64
	relations *memRelations
	products  *memProducts

	creates, updates, deletes int
}

func (m *memRewrites) FindByEntityTypeAndEntityIDAndStoreID(entityType string, entityID, storeID int64) ([]models.URLRewrite, error) {
	var out []models.URLRewrite
	for _, r := range m.byID {
		if r.EntityType == entityType && r.EntityID == entityID && r.StoreID == storeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRewrites) FindByRequestPath(requestPath string, storeID int64) (*models.URLRewrite, error) {
	for _, r := range m.byID {
		if r.StoreID == storeID && r.RequestPath == requestPath {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memRewrites) taken(r *models.URLRewrite) bool {
	for id, other := range m.byID {
		if id != r.ID && other.StoreID == r.StoreID && other.RequestPath == r.RequestPath {
			return true
		}
	}
	return false
}

func (m *memRewrites) Persist(r *models.URLRewrite) (int64, error) {
	if m.taken(r) {
		return 0, models.ErrDuplicate
	}
	if r.ID == 0 {
		m.nextID++
		stored := *r
		stored.ID = m.nextID
		m.byID[stored.ID] = stored
		m.creates++
		return stored.ID, nil
	}
	m.byID[r.ID] = *r
	m.updates++
	return r.ID, nil
}

func (m *memRewrites) Delete(id int64) error {
	delete(m.byID, id)
	delete(m.relations.byID, id)
	m.deletes++
	return nil
}

func (m *memRewrites) DeleteBySKU(sku string) (int64, error) {
	p, ok := m.products.bySKU[sku]
	if !ok {
		return 0, nil
	}
	var n int64
	for id, r := range m.byID {
		if r.EntityType == models.EntityTypeProduct && r.EntityID == p.ID {
			delete(m.byID, id)
			delete(m.relations.byID, id)
			n++
		}
	}
	return n, nil
}

// seed stores a rewrite as if a previous import had created it.
func (m *memRewrites) seed(r models.URLRewrite) int64 {
	m.nextID++
	r.ID = m.nextID
	m.byID[r.ID] = r
	return r.ID
}

func (m *memRewrites) writes() int {
	return m.creates + m.updates + m.deletes + m.relations.writes
}

func (m *memRewrites) byPath(t *testing.T, storeID int64, path string) models.URLRewrite {
	t.Helper()
	for _, r := range m.byID {
		if r.StoreID == storeID && r.RequestPath == path {
			return r
		}
	}
	t.Fatalf("no rewrite %q in store %d", path, storeID)
	return models.URLRewrite{}
}

func (m *memRewrites) inStore(storeID int64) []models.URLRewrite {
	var out []models.URLRewrite
	for _, r := range m.byID {
		if r.StoreID == storeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// memRelations is an in-memory RelationStore.
type memRelations struct {
	byID   map[int64]models.URLRewriteProductCategory
	writes int
}

func (m *memRelations) Load(id int64) (*models.URLRewriteProductCategory, error) {
	rel, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &rel, nil
}

func (m *memRelations) Persist(rel *models.URLRewriteProductCategory) error {
	m.byID[rel.URLRewriteID] = *rel
	m.writes++
	return nil
}

// memURLKeys is an in-memory URLKeyResolver and URLKeyWriter.
type memURLKeys struct {
	taken  map[string]int64
	stored map[int64]string
}

func (m *memURLKeys) MakeUnique(base string, entityTypeID, storeID, entityID int64) (string, error) {
	if owner, ok := m.taken[base]; ok && owner != entityID {
		return base + "-1", nil
	}
	return base, nil
}

func (m *memURLKeys) Upsert(code string, entityTypeID, storeID, entityID int64, value string) error {
	m.stored[entityID] = value
	return nil
}

// fixture is a small catalog:
//
//	1 Root Catalog
//	└── 2 Default Category (root of store "default")
//	    ├── 10 Men            url men             not anchor
//	    │   └── 11 Tops       url men/tops        not anchor
//	    │       └── 12 Hoodies url men/tops/hoodies anchor
//	    ├── 13 Women          url women           anchor
//	    └── 14 Sale           no url path         anchor
type fixture struct {
	products   *memProducts
	stores     *memStores
	categories *memCategories
	config     memConfig
	rewrites   *memRewrites
	relations  *memRelations
	urlKeys    *memURLKeys
}

const (
	testSKU       = "TEST-01"
	testProductID = int64(61413)
	rootID        = int64(2)
	hoodiesID     = int64(12)
	womenID       = int64(13)
)

var (
	adminStore   = models.Store{ID: 0, Code: models.AdminStoreCode, WebsiteCode: "admin", IsActive: true}
	defaultStore = models.Store{ID: 1, Code: "default", WebsiteCode: "base", RootCategoryID: rootID, IsActive: true}
)

func newFixture() *fixture {
	cats := &memCategories{byID: map[int64]models.Category{}, roots: []int64{rootID}}
	cats.add(1, 0, "Root Catalog", "", true)
	cats.add(rootID, 1, "Default Category", "", true)
	cats.add(10, rootID, "Default Category/Men", "men", false)
	cats.add(11, 10, "Default Category/Men/Tops", "men/tops", false)
	cats.add(hoodiesID, 11, "Default Category/Men/Tops/Hoodies", "men/tops/hoodies", true)
	cats.add(womenID, rootID, "Default Category/Women", "women", true)
	cats.add(14, rootID, "Default Category/Sale", "", true)

	products := &memProducts{
		bySKU:    map[string]models.Product{testSKU: {ID: testProductID, SKU: testSKU}},
		websites: map[int64][]string{testProductID: {"base"}},
	}
	relations := &memRelations{byID: map[int64]models.URLRewriteProductCategory{}}

	return &fixture{
		products:   products,
		stores:     &memStores{stores: []models.Store{adminStore, defaultStore}},
		categories: cats,
		config:     memConfig{models.ConfigProductUseCategories: "1"},
		rewrites:   &memRewrites{byID: map[int64]models.URLRewrite{}, relations: relations, products: products},
		relations:  relations,
		urlKeys:    &memURLKeys{taken: map[string]int64{}, stored: map[int64]string{}},
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Products:     f.products,
		Stores:       f.stores,
		Categories:   f.categories,
		Config:       f.config,
		Rewrites:     f.rewrites,
		Relations:    f.relations,
		URLKeys:      f.urlKeys,
		URLKeyWriter: f.urlKeys,
		Logger:       discardLogger(),
	}
}

func (f *fixture) engine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(f.deps(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// settings returns the fixture's effective settings.
func (f *fixture) settings(t *testing.T) Settings {
	t.Helper()
	s, err := LoadSettings(f.config, defaultStore.ID, nil)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	return s
}
