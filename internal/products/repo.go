package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/pagination"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists changes to an existing product.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// FindByID loads a product by its UUID, category included.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products plus the total count. filter narrows the
// query and is applied to both the count and the page.
func (r *Repository) List(ctx context.Context, page pagination.Params, filter func(*gorm.DB) *gorm.DB) ([]models.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Product{})
	if filter != nil {
		base = filter(base)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("Category")
	if filter != nil {
		query = filter(query)
	}

	var rows []models.Product
	if err := query.Scopes(page.Scope()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateCategory reassigns the product to the given category.
func (r *Repository) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("category_id", categoryID).Error
}

// UpdateImage stores the new product image object name.
func (r *Repository) UpdateImage(ctx context.Context, id uuid.UUID, imageName string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("image_name", imageName).Error
}

// FilterLive narrows a product query to listings marked live.
func FilterLive(tx *gorm.DB) *gorm.DB {
	return tx.Where("live = ?", true)
}

// FilterByCategory narrows a product query to one category.
func FilterByCategory(categoryID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("category_id = ?", categoryID)
	}
}

// FilterByKeyword narrows a product query to titles containing the keyword.
func FilterByKeyword(keyword string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("title LIKE ?", "%"+keyword+"%")
	}
}
