package products

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/db/models"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/pagination"
	"github.com/electrostorehq/backend/pkg/storage"
)

const (
	productNotFoundMessage  = "product not found"
	categoryNotFoundMessage = "category not found"
)

var sortableProductColumns = []string{"title", "price", "discounted_price", "added_at", "created_at"}

// Service defines the behavior needed by the products controller.
type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error)
	CreateInCategory(ctx context.Context, categoryID uuid.UUID, req CreateProductRequest) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, page pagination.Params) (pagination.Page[ProductDTO], error)
	ListLive(ctx context.Context, page pagination.Params) (pagination.Page[ProductDTO], error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, page pagination.Params) (pagination.Page[ProductDTO], error)
	Search(ctx context.Context, keyword string, page pagination.Params) (pagination.Page[ProductDTO], error)
	AssignCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (*ProductDTO, error)
	UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*ProductDTO, error)
	OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

type repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, page pagination.Params, filter func(*gorm.DB) *gorm.DB) ([]models.Product, int64, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error
	UpdateImage(ctx context.Context, id uuid.UUID, imageName string) error
}

type categoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       repository
	categories categoryRepository
	store      storage.Store
	storageCfg config.StorageConfig
	now        func() time.Time
}

// ServiceParams bundles the dependencies required to build a products service.
type ServiceParams struct {
	Repo          repository
	CategoryRepo  categoryRepository
	Store         storage.Store
	StorageConfig config.StorageConfig
	Now           func() time.Time
}

// NewService constructs a products service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	if params.CategoryRepo == nil {
		return nil, fmt.Errorf("categories repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:       params.Repo,
		categories: params.CategoryRepo,
		store:      params.Store,
		storageCfg: params.StorageConfig,
		now:        now,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	discounted := req.DiscountedPrice
	if discounted.IsZero() {
		discounted = req.Price
	}
	if discounted.GreaterThan(req.Price) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discounted price cannot exceed price")
	}

	product := &models.Product{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		DiscountedPrice: discounted,
		Quantity:        req.Quantity,
		Live:            req.Live,
		Stock:           req.Stock,
		CategoryID:      req.CategoryID,
		AddedAt:         s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) CreateInCategory(ctx context.Context, categoryID uuid.UUID, req CreateProductRequest) (*ProductDTO, error) {
	req.CategoryID = &categoryID
	return s.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountedPrice != nil {
		product.DiscountedPrice = *req.DiscountedPrice
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Live != nil {
		product.Live = *req.Live
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if product.DiscountedPrice.GreaterThan(product.Price) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discounted price cannot exceed price")
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if product.ImageName != nil {
		if err := s.store.Remove(ctx, s.storageCfg.ProductImageDir, *product.ImageName); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove product image")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (pagination.Page[ProductDTO], error) {
	return s.listWithFilter(ctx, page, nil, "list products")
}

func (s *service) ListLive(ctx context.Context, page pagination.Params) (pagination.Page[ProductDTO], error) {
	return s.listWithFilter(ctx, page, FilterLive, "list live products")
}

func (s *service) ListByCategory(ctx context.Context, categoryID uuid.UUID, page pagination.Params) (pagination.Page[ProductDTO], error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return pagination.Page[ProductDTO]{}, err
	}
	return s.listWithFilter(ctx, page, FilterByCategory(categoryID), "list products by category")
}

func (s *service) Search(ctx context.Context, keyword string, page pagination.Params) (pagination.Page[ProductDTO], error) {
	return s.listWithFilter(ctx, page, FilterByKeyword(strings.TrimSpace(keyword)), "search products")
}

func (s *service) AssignCategory(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) (*ProductDTO, error) {
	if _, err := s.findProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, id, categoryID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign category")
	}
	return s.Get(ctx, id)
}

func (s *service) UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*ProductDTO, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.store.Save(ctx, s.storageCfg.ProductImageDir, filename, contents)
	if err != nil {
		return nil, err
	}

	if product.ImageName != nil {
		// stale image cleanup is best effort
		_ = s.store.Remove(ctx, s.storageCfg.ProductImageDir, *product.ImageName)
	}

	if err := s.repo.UpdateImage(ctx, id, name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist image name")
	}

	product.ImageName = &name
	return FromModel(product), nil
}

func (s *service) OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ImageName == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product has no image")
	}
	return s.store.Open(ctx, s.storageCfg.ProductImageDir, *product.ImageName)
}

func (s *service) listWithFilter(ctx context.Context, page pagination.Params, filter func(*gorm.DB) *gorm.DB, action string) (pagination.Page[ProductDTO], error) {
	page = page.Normalize(sortableProductColumns...)
	rows, total, err := s.repo.List(ctx, page, filter)
	if err != nil {
		return pagination.Page[ProductDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, page, total), nil
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return product, nil
}

func (s *service) checkCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, categoryNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return nil
}
