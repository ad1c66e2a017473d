package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/electrostorehq/backend/pkg/enums"
)

// Order is an immutable record of a converted cart.
type Order struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	User              *User               `gorm:"foreignKey:UserID"`
	OrderStatus       enums.OrderStatus   `gorm:"column:order_status;not null"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;not null"`
	OrderAmount       decimal.Decimal     `gorm:"column:order_amount;type:numeric(10,2);not null"`
	BillingAddress    string              `gorm:"column:billing_address;not null"`
	BillingPhone      string              `gorm:"column:billing_phone;not null"`
	BillingName       string              `gorm:"column:billing_name;not null"`
	OrderedAt         time.Time           `gorm:"column:ordered_at;not null"`
	DeliveredAt       *time.Time          `gorm:"column:delivered_at"`
	ProviderOrderID   *string             `gorm:"column:provider_order_id"`
	ProviderPaymentID *string             `gorm:"column:provider_payment_id"`
	Items             []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
