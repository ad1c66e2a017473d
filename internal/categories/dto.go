package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/electrostorehq/backend/pkg/db/models"
)

// CategoryDTO is the transport shape of a catalog category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCategoryRequest is the payload to create a category.
type CreateCategoryRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"required,max=1000"`
	CoverImage  *string `json:"coverImage,omitempty" validate:"omitempty,max=255"`
}

// UpdateCategoryRequest carries the mutable category fields.
type UpdateCategoryRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	CoverImage  *string `json:"coverImage,omitempty" validate:"omitempty,max=255"`
}

func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CoverImage:  c.CoverImage,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
