package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/electrostorehq/backend/internal/categories"
	"github.com/electrostorehq/backend/pkg/db/models"
)

// ProductDTO is the transport shape of a catalog listing.
type ProductDTO struct {
	ID              uuid.UUID                `json:"productId"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Price           decimal.Decimal          `json:"price"`
	DiscountedPrice decimal.Decimal          `json:"discountedPrice"`
	Quantity        int                      `json:"quantity"`
	Live            bool                     `json:"live"`
	Stock           bool                     `json:"stock"`
	ImageName       *string                  `json:"imageName,omitempty"`
	Category        *categories.CategoryDTO  `json:"category,omitempty"`
	AddedAt         time.Time                `json:"addedDate"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// CreateProductRequest is the payload to create a product.
type CreateProductRequest struct {
	Title           string          `json:"title" validate:"required,min=3,max=200"`
	Description     string          `json:"description" validate:"required,max=5000"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	Live            bool            `json:"live"`
	Stock           bool            `json:"stock"`
	CategoryID      *uuid.UUID      `json:"categoryId,omitempty"`
}

// UpdateProductRequest carries the mutable product fields.
type UpdateProductRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Quantity        *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Live            *bool            `json:"live,omitempty"`
	Stock           *bool            `json:"stock,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Quantity:        p.Quantity,
		Live:            p.Live,
		Stock:           p.Stock,
		ImageName:       p.ImageName,
		Category:        categories.FromModel(p.Category),
		AddedAt:         p.AddedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
