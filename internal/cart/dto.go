package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/electrostorehq/backend/internal/products"
	"github.com/electrostorehq/backend/pkg/db/models"
)

// AddItemRequest sets the desired quantity for one product in the cart.
// Re-adding a product replaces its quantity rather than accumulating.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CartItemDTO is the transport shape of one cart line.
type CartItemDTO struct {
	ID         uuid.UUID            `json:"cartItemId"`
	Product    *products.ProductDTO `json:"product"`
	Quantity   int                  `json:"quantity"`
	TotalPrice decimal.Decimal      `json:"totalPrice"`
}

// CartDTO is the transport shape of a user's cart.
type CartDTO struct {
	ID        uuid.UUID       `json:"cartId"`
	UserID    uuid.UUID       `json:"userId"`
	Items     []CartItemDTO   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func FromModel(c *models.Cart) *CartDTO {
	if c == nil {
		return nil
	}

	items := make([]CartItemDTO, 0, len(c.Items))
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		items = append(items, CartItemDTO{
			ID:         item.ID,
			Product:    products.FromModel(item.Product),
			Quantity:   item.Quantity,
			TotalPrice: item.TotalPrice,
		})
		total = total.Add(item.TotalPrice)
	}

	return &CartDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		Total:     total,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
