//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/testutil"
)

func newRepoTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.MigrateSchema(repo.Pool()); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	if err := testutil.ResetTables(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset tables: %v", err)
	}

	return ctx, repo
}

func TestIntegrationProductRepository_Create(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	slug := testutil.UniqueSlug("create")
	product := testutil.NewTestProduct(t, slug)

	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	retrieved, err := repo.GetProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProductByID failed: %v", err)
	}

	if retrieved.Slug != slug {
		t.Errorf("Slug mismatch: got %q, want %q", retrieved.Slug, slug)
	}
	if retrieved.Price != product.Price {
		t.Errorf("Price mismatch: got %d, want %d", retrieved.Price, product.Price)
	}
	if retrieved.Quantity != product.Quantity {
		t.Errorf("Quantity mismatch: got %d, want %d", retrieved.Quantity, product.Quantity)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestIntegrationProductRepository_Create_DuplicateSlug(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	slug := testutil.UniqueSlug("dup")
	first := testutil.NewTestProduct(t, slug)
	second := testutil.NewTestProduct(t, slug)
	second.ID = testutil.UniqueID("prod") // Different ID, same slug

	if err := repo.CreateProduct(ctx, first); err != nil {
		t.Fatalf("CreateProduct (first) failed: %v", err)
	}

	if err := repo.CreateProduct(ctx, second); !errors.Is(err, ErrSlugExists) {
		t.Errorf("Expected ErrSlugExists, got: %v", err)
	}
}

func TestIntegrationProductRepository_GetBySlug(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	slug := testutil.UniqueSlug("byslug")
	product := testutil.NewTestProduct(t, slug)

	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	retrieved, err := repo.GetProductBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("GetProductBySlug failed: %v", err)
	}
	if retrieved.ID != product.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, product.ID)
	}

	if _, err := repo.GetProductBySlug(ctx, "no-such-slug"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestIntegrationProductRepository_SlugExists(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	slug := testutil.UniqueSlug("exists")
	product := testutil.NewTestProduct(t, slug)

	exists, err := repo.SlugExists(ctx, slug)
	if err != nil {
		t.Fatalf("SlugExists failed: %v", err)
	}
	if exists {
		t.Error("slug should not exist yet")
	}

	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	exists, err = repo.SlugExists(ctx, slug)
	if err != nil {
		t.Fatalf("SlugExists failed: %v", err)
	}
	if !exists {
		t.Error("slug should exist after create")
	}
}

func TestIntegrationProductRepository_Update(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	product := testutil.NewTestProduct(t, testutil.UniqueSlug("upd"))
	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	product.Name = "Renamed Product"
	product.Price = model.Price(4999)
	product.Quantity = 3

	if err := repo.UpdateProduct(ctx, product); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	retrieved, err := repo.GetProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProductByID failed: %v", err)
	}
	if retrieved.Name != "Renamed Product" {
		t.Errorf("Name mismatch: got %q", retrieved.Name)
	}
	if retrieved.Price.Cents() != 4999 {
		t.Errorf("Price mismatch: got %d, want 4999", retrieved.Price.Cents())
	}
}

func TestIntegrationProductRepository_Update_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	product := testutil.NewTestProduct(t, testutil.UniqueSlug("ghost"))

	if err := repo.UpdateProduct(ctx, product); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestIntegrationProductRepository_Update_SlugConflict(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	first := testutil.NewTestProduct(t, testutil.UniqueSlug("one"))
	second := testutil.NewTestProduct(t, testutil.UniqueSlug("two"))
	second.ID = testutil.UniqueID("prod")

	if err := repo.CreateProduct(ctx, first); err != nil {
		t.Fatalf("CreateProduct (first) failed: %v", err)
	}
	if err := repo.CreateProduct(ctx, second); err != nil {
		t.Fatalf("CreateProduct (second) failed: %v", err)
	}

	second.Slug = first.Slug
	if err := repo.UpdateProduct(ctx, second); !errors.Is(err, ErrSlugExists) {
		t.Errorf("Expected ErrSlugExists, got: %v", err)
	}
}

func TestIntegrationProductRepository_Delete(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	product := testutil.NewTestProduct(t, testutil.UniqueSlug("del"))
	if err := repo.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if err := repo.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	if _, err := repo.GetProductByID(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}

	// Deleting a second time reports not found
	if err := repo.DeleteProduct(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound on second delete, got: %v", err)
	}
}

func TestIntegrationProductRepository_List(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	for i := 0; i < 5; i++ {
		product := testutil.NewTestProduct(t, testutil.UniqueSlug("list"))
		product.ID = testutil.UniqueID("prod")
		if err := repo.CreateProduct(ctx, product); err != nil {
			t.Fatalf("CreateProduct %d failed: %v", i, err)
		}
	}

	products, total, err := repo.ListProducts(ctx, 0, 3)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(products) != 3 {
		t.Errorf("page size = %d, want 3", len(products))
	}

	products, _, err = repo.ListProducts(ctx, 3, 3)
	if err != nil {
		t.Fatalf("ListProducts (offset) failed: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("second page size = %d, want 2", len(products))
	}
}
