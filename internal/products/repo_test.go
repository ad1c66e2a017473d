package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  cover_image TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price TEXT NOT NULL,
  discounted_price TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  live INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 1,
  image_name TEXT,
  category_id TEXT,
  added_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

func mustSeedProduct(t *testing.T, tx *gorm.DB, title string, live bool, categoryID *uuid.UUID) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:              uuid.New(),
		Title:           title,
		Description:     "about " + title,
		Price:           decimal.NewFromInt(1000),
		DiscountedPrice: decimal.NewFromInt(900),
		Quantity:        5,
		Live:            live,
		Stock:           true,
		CategoryID:      categoryID,
		AddedAt:         time.Now().UTC(),
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func TestRepositoryCreateAndFind(t *testing.T) {
	tx := setupProductsTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	created := mustSeedProduct(t, tx, "Noise Cancelling Headphones", true, nil)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(1000)))
	assert.True(t, found.DiscountedPrice.Equal(decimal.NewFromInt(900)))
}

func TestRepositoryListLiveFilter(t *testing.T) {
	tx := setupProductsTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	mustSeedProduct(t, tx, "Visible Keyboard", true, nil)
	mustSeedProduct(t, tx, "Hidden Keyboard", false, nil)

	page := pagination.Params{PageSize: 50}.Normalize("title")
	rows, total, err := repo.List(ctx, page, FilterLive)
	require.NoError(t, err)
	assert.Equal(t, int(total), len(rows))
	for _, p := range rows {
		assert.True(t, p.Live, "filter must exclude drafts")
	}
}

func TestRepositoryListByCategory(t *testing.T) {
	tx := setupProductsTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	category := &models.Category{ID: uuid.New(), Title: "Tablets", Description: "slates"}
	require.NoError(t, tx.Create(category).Error)

	mustSeedProduct(t, tx, "Tablet A", true, &category.ID)
	mustSeedProduct(t, tx, "Tablet B", true, &category.ID)
	mustSeedProduct(t, tx, "Unrelated", true, nil)

	page := pagination.Params{PageSize: 50}.Normalize("title")
	rows, total, err := repo.List(ctx, page, FilterByCategory(category.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, "Tablets", rows[0].Category.Title)
}

func TestRepositoryKeywordFilter(t *testing.T) {
	tx := setupProductsTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	needle := uuid.NewString()[:8]
	for i := 0; i < 3; i++ {
		mustSeedProduct(t, tx, fmt.Sprintf("Gizmo %s %d", needle, i), true, nil)
	}
	mustSeedProduct(t, tx, "Something else", true, nil)

	page := pagination.Params{PageSize: 50}.Normalize("title")
	rows, total, err := repo.List(ctx, page, FilterByKeyword(needle))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)
}

func TestRepositoryUpdateCategory(t *testing.T) {
	tx := setupProductsTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	category := &models.Category{ID: uuid.New(), Title: "Monitors", Description: "screens"}
	require.NoError(t, tx.Create(category).Error)
	product := mustSeedProduct(t, tx, "Ultrawide", true, nil)

	require.NoError(t, repo.UpdateCategory(ctx, product.ID, category.ID))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.CategoryID)
	assert.Equal(t, category.ID, *found.CategoryID)
}
