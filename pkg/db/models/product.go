package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing.
type Product struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string          `gorm:"column:title;not null"`
	Description     string          `gorm:"column:description;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountedPrice decimal.Decimal `gorm:"column:discounted_price;type:numeric(10,2);not null"`
	Quantity        int             `gorm:"column:quantity;not null;default:0"`
	Live            bool            `gorm:"column:live;not null;default:false"`
	Stock           bool            `gorm:"column:stock;not null;default:true"`
	ImageName       *string         `gorm:"column:image_name"`
	CategoryID      *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	Category        *Category       `gorm:"foreignKey:CategoryID"`
	AddedAt         time.Time       `gorm:"column:added_at;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
