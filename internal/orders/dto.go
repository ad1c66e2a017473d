package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/electrostorehq/backend/internal/products"
	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
)

// CreateOrderRequest converts the user's cart into an order.
type CreateOrderRequest struct {
	UserID         uuid.UUID `json:"userId" validate:"required"`
	OrderStatus    *string   `json:"orderStatus,omitempty"`
	PaymentStatus  *string   `json:"paymentStatus,omitempty"`
	BillingName    string    `json:"billingName" validate:"required,min=3,max=100"`
	BillingPhone   string    `json:"billingPhone" validate:"required,min=7,max=20"`
	BillingAddress string    `json:"billingAddress" validate:"required,max=1000"`
}

// AdminUpdateOrderRequest carries the fields an admin may change on an order.
type AdminUpdateOrderRequest struct {
	OrderStatus   *string    `json:"orderStatus,omitempty"`
	PaymentStatus *string    `json:"paymentStatus,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredDate,omitempty"`
}

// UpdateBillingRequest carries the billing fields the order's owner may change.
type UpdateBillingRequest struct {
	BillingName    *string `json:"billingName,omitempty" validate:"omitempty,min=3,max=100"`
	BillingPhone   *string `json:"billingPhone,omitempty" validate:"omitempty,min=7,max=20"`
	BillingAddress *string `json:"billingAddress,omitempty" validate:"omitempty,max=1000"`
}

// OrderItemDTO is the transport shape of one order line.
type OrderItemDTO struct {
	ID         uuid.UUID            `json:"orderItemId"`
	Product    *products.ProductDTO `json:"product"`
	Quantity   int                  `json:"quantity"`
	TotalPrice decimal.Decimal      `json:"totalPrice"`
}

// OrderDTO is the transport shape of an order.
type OrderDTO struct {
	ID                uuid.UUID           `json:"orderId"`
	UserID            uuid.UUID           `json:"userId"`
	OrderStatus       enums.OrderStatus   `json:"orderStatus"`
	PaymentStatus     enums.PaymentStatus `json:"paymentStatus"`
	OrderAmount       decimal.Decimal     `json:"orderAmount"`
	BillingName       string              `json:"billingName"`
	BillingPhone      string              `json:"billingPhone"`
	BillingAddress    string              `json:"billingAddress"`
	OrderedAt         time.Time           `json:"orderedDate"`
	DeliveredAt       *time.Time          `json:"deliveredDate,omitempty"`
	ProviderOrderID   *string             `json:"providerOrderId,omitempty"`
	ProviderPaymentID *string             `json:"providerPaymentId,omitempty"`
	Items             []OrderItemDTO      `json:"items"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := make([]OrderItemDTO, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemDTO{
			ID:         item.ID,
			Product:    products.FromModel(item.Product),
			Quantity:   item.Quantity,
			TotalPrice: item.TotalPrice,
		})
	}

	return &OrderDTO{
		ID:                o.ID,
		UserID:            o.UserID,
		OrderStatus:       o.OrderStatus,
		PaymentStatus:     o.PaymentStatus,
		OrderAmount:       o.OrderAmount,
		BillingName:       o.BillingName,
		BillingPhone:      o.BillingPhone,
		BillingAddress:    o.BillingAddress,
		OrderedAt:         o.OrderedAt,
		DeliveredAt:       o.DeliveredAt,
		ProviderOrderID:   o.ProviderOrderID,
		ProviderPaymentID: o.ProviderPaymentID,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
