package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
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
);`, `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  total_price TEXT NOT NULL,
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

func mustSeedCartProduct(t *testing.T, tx *gorm.DB, title string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:              uuid.New(),
		Title:           title,
		Description:     "about " + title,
		Price:           decimal.NewFromInt(100),
		DiscountedPrice: decimal.NewFromInt(90),
		Quantity:        10,
		Live:            true,
		Stock:           true,
		AddedAt:         time.Now().UTC(),
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func TestFindOrCreateIsLazy(t *testing.T) {
	tx := setupCartTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()
	userID := uuid.New()

	first, err := repo.FindOrCreateByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, first.Items)

	second, err := repo.FindOrCreateByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "a user holds exactly one cart")
}

func TestItemLifecycle(t *testing.T) {
	tx := setupCartTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()
	userID := uuid.New()

	cart, err := repo.FindOrCreateByUserID(ctx, userID)
	require.NoError(t, err)
	product := mustSeedCartProduct(t, tx, "USB Hub")

	item := &models.CartItem{
		ID:         uuid.New(),
		CartID:     cart.ID,
		ProductID:  product.ID,
		Quantity:   2,
		TotalPrice: decimal.NewFromInt(180),
	}
	require.NoError(t, repo.CreateItem(ctx, item))

	found, err := repo.FindItem(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Quantity)

	found.Quantity = 5
	found.TotalPrice = decimal.NewFromInt(450)
	require.NoError(t, repo.SaveItem(ctx, found))

	loaded, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 5, loaded.Items[0].Quantity)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, "USB Hub", loaded.Items[0].Product.Title)

	affected, err := repo.DeleteItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.DeleteItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestDeleteItemsClearsCart(t *testing.T) {
	tx := setupCartTestDB(t)
	repo := NewRepository(tx)
	ctx := context.Background()
	userID := uuid.New()

	cart, err := repo.FindOrCreateByUserID(ctx, userID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		product := mustSeedCartProduct(t, tx, "Bulk Item")
		require.NoError(t, repo.CreateItem(ctx, &models.CartItem{
			ID:         uuid.New(),
			CartID:     cart.ID,
			ProductID:  product.ID,
			Quantity:   1,
			TotalPrice: decimal.NewFromInt(90),
		}))
	}

	require.NoError(t, repo.DeleteItems(ctx, cart.ID))

	loaded, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}
