// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"catalogrewrite/internal/models"
)

func TestURLRewriteStorePersist(t *testing.T) {
	db := testDB(t)
	s := NewURLRewriteStore(db)

	pid := createProduct(t, db, "STORE-TEST-REWRITE")

	r := &models.URLRewrite{
		EntityType:      models.EntityTypeProduct,
		EntityID:        pid,
		RequestPath:     "store-test-rewrite.html",
		TargetPath:      "catalog/product/view/id/1",
		StoreID:         1,
		IsAutogenerated: true,
	}
	id, err := s.Persist(r)
	if err != nil {
		t.Fatalf("Persist (create): %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	r.ID = id
	r.RedirectType = models.RedirectPermanent
	r.TargetPath = "store-test-rewrite-new.html"
	r.Metadata = &models.Metadata{CategoryID: 2}
	if _, err := s.Persist(r); err != nil {
		t.Fatalf("Persist (update): %v", err)
	}

	got, err := s.FindByEntityTypeAndEntityIDAndStoreID(models.EntityTypeProduct, pid, 1)
	if err != nil {
		t.Fatalf("FindByEntityTypeAndEntityIDAndStoreID: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 rewrite, got %d", len(got))
	}
	if !got[0].Equal(r) {
		t.Errorf("stored rewrite: got %+v, want %+v", got[0], *r)
	}

	byPath, err := s.FindByRequestPath("store-test-rewrite.html", 1)
	if err != nil {
		t.Fatalf("FindByRequestPath: %v", err)
	}
	if byPath == nil || byPath.ID != id {
		t.Errorf("FindByRequestPath: got %+v", byPath)
	}
}

func TestURLRewriteStoreDuplicate(t *testing.T) {
	db := testDB(t)
	s := NewURLRewriteStore(db)

	a := createProduct(t, db, "STORE-TEST-DUP-A")
	b := createProduct(t, db, "STORE-TEST-DUP-B")

	if _, err := s.Create(&models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: a,
		RequestPath: "store-test-dup.html", TargetPath: "catalog/product/view/id/a", StoreID: 1,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := s.Create(&models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: b,
		RequestPath: "store-test-dup.html", TargetPath: "catalog/product/view/id/b", StoreID: 1,
	})
	if !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestURLRewriteStoreDeleteBySKU(t *testing.T) {
	db := testDB(t)
	s := NewURLRewriteStore(db)
	rel := NewURLRewriteProductCategoryStore(db)

	pid := createProduct(t, db, "STORE-TEST-CLEAR")
	cat := createCategory(t, db, 2, "Default Category/Store Test Clear", strPtr("store-test-clear"), true)

	for i, path := range []string{"store-test-clear.html", "store-test-clear/store-test-clear.html"} {
		id, err := s.Create(&models.URLRewrite{
			EntityType: models.EntityTypeProduct, EntityID: pid,
			RequestPath: path, TargetPath: "catalog/product/view/id/x", StoreID: 1,
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		if i == 1 {
			if err := rel.Persist(&models.URLRewriteProductCategory{URLRewriteID: id, ProductID: pid, CategoryID: cat}); err != nil {
				t.Fatalf("relation Persist: %v", err)
			}
		}
	}

	bySKU, err := s.FindBySKU("STORE-TEST-CLEAR")
	if err != nil {
		t.Fatalf("FindBySKU: %v", err)
	}
	if len(bySKU) != 2 {
		t.Fatalf("FindBySKU: got %d rewrites, want 2", len(bySKU))
	}

	n, err := s.DeleteBySKU("STORE-TEST-CLEAR")
	if err != nil {
		t.Fatalf("DeleteBySKU: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteBySKU deleted %d, want 2", n)
	}

	// Relations cascade with their rewrite.
	var count int
	db.QueryRow("SELECT COUNT(*) FROM catalog_url_rewrite_product_category WHERE product_id = $1", pid).Scan(&count)
	if count != 0 {
		t.Errorf("expected relations to cascade, %d left", count)
	}
}

func TestURLRewriteProductCategoryStore(t *testing.T) {
	db := testDB(t)
	s := NewURLRewriteStore(db)
	rel := NewURLRewriteProductCategoryStore(db)

	pid := createProduct(t, db, "STORE-TEST-RELATION")
	c1 := createCategory(t, db, 2, "Default Category/Store Test Rel 1", strPtr("rel-1"), true)
	c2 := createCategory(t, db, 2, "Default Category/Store Test Rel 2", strPtr("rel-2"), true)

	id, err := s.Create(&models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: pid,
		RequestPath: "rel-1/store-test-relation.html", TargetPath: "x", StoreID: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	none, err := rel.Load(id)
	if err != nil {
		t.Fatalf("Load (none): %v", err)
	}
	if none != nil {
		t.Error("expected no relation before Persist")
	}

	if err := rel.Persist(&models.URLRewriteProductCategory{URLRewriteID: id, ProductID: pid, CategoryID: c1}); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := rel.Persist(&models.URLRewriteProductCategory{URLRewriteID: id, ProductID: pid, CategoryID: c2}); err != nil {
		t.Fatalf("Persist (update): %v", err)
	}

	got, err := rel.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.CategoryID != c2 || got.ProductID != pid {
		t.Errorf("Load: got %+v", got)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := rel.Load(id)
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if gone != nil {
		t.Error("relation should be gone with its rewrite")
	}
}

func TestURLRewriteStoreDuplicateKeepsTransaction(t *testing.T) {
	db := testDB(t)

	a := createProduct(t, db, "STORE-TEST-TX-A")
	b := createProduct(t, db, "STORE-TEST-TX-B")
	cat := createCategory(t, db, 2, "Default Category/Store Test Tx", strPtr("store-test-tx"), true)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer tx.Rollback()

	s := NewURLRewriteStore(tx)
	rel := NewURLRewriteProductCategoryStore(tx)

	first, err := s.Create(&models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: a,
		RequestPath: "store-test-tx.html", TargetPath: "catalog/product/view/id/a", StoreID: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = s.Create(&models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: b,
		RequestPath: "store-test-tx.html", TargetPath: "catalog/product/view/id/b", StoreID: 1,
	})
	if !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("duplicate Create: expected ErrDuplicate, got %v", err)
	}

	second := &models.URLRewrite{
		EntityType: models.EntityTypeProduct, EntityID: b,
		RequestPath: "store-test-tx-b.html", TargetPath: "catalog/product/view/id/b", StoreID: 1,
	}
	second.ID, err = s.Create(second)
	if err != nil {
		t.Fatalf("Create after duplicate: %v", err)
	}

	second.RequestPath = "store-test-tx.html"
	if err := s.Update(second); !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("duplicate Update: expected ErrDuplicate, got %v", err)
	}

	if err := rel.Persist(&models.URLRewriteProductCategory{URLRewriteID: first, ProductID: a, CategoryID: cat}); err != nil {
		t.Fatalf("relation Persist after duplicate: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	stored, err := NewURLRewriteStore(db).FindByRequestPath("store-test-tx-b.html", 1)
	if err != nil {
		t.Fatalf("FindByRequestPath: %v", err)
	}
	if stored == nil || stored.EntityID != b {
		t.Errorf("rewrite created after the duplicate was not committed: %+v", stored)
	}
	got, err := NewURLRewriteProductCategoryStore(db).Load(first)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.CategoryID != cat {
		t.Errorf("relation not committed: %+v", got)
	}
}
