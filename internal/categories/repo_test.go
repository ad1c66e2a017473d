package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/pagination"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
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

func mustSeedCategory(t *testing.T, tx *gorm.DB, title string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:          uuid.New(),
		Title:       title,
		Description: "about " + title,
	}
	require.NoError(t, tx.Create(category).Error)
	return category
}

func TestRepositoryCreateAndFind(t *testing.T) {
	tx := setupCategoriesTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Category{
		ID:          uuid.New(),
		Title:       "Laptops",
		Description: "Portable machines",
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptops", found.Title)
}

func TestRepositoryDeleteDetachesProducts(t *testing.T) {
	tx := setupCategoriesTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	category := mustSeedCategory(t, tx, "Doomed")
	product := &models.Product{
		ID:          uuid.New(),
		Title:       "Orphan",
		Description: "keeps its row",
		CategoryID:  &category.ID,
	}
	require.NoError(t, tx.Create(product).Error)

	require.NoError(t, repo.Delete(ctx, category.ID))

	_, err := repo.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var survivor models.Product
	require.NoError(t, tx.First(&survivor, "id = ?", product.ID).Error)
	assert.Nil(t, survivor.CategoryID)
}

func TestRepositoryListPages(t *testing.T) {
	tx := setupCategoriesTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()

	mustSeedCategory(t, tx, "Audio")
	mustSeedCategory(t, tx, "Cameras")
	mustSeedCategory(t, tx, "Displays")

	page := pagination.Params{PageNumber: 0, PageSize: 2}.Normalize("title")
	rows, total, err := repo.List(ctx, page)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
	assert.Len(t, rows, 2)
}
