package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/pagination"
)

// ErrEmptyCart is returned when a cart with no items is converted.
var ErrEmptyCart = errors.New("cart has no items")

// ErrCartNotFound is returned when the user has no cart row at all.
var ErrCartNotFound = errors.New("cart not found")

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ConvertCart atomically turns the user's cart into the given order shell.
// Lines are repriced at each product's current discounted price, the order
// amount is the sum of the repriced lines, and the cart is emptied. The whole
// conversion runs in one transaction.
func (r *Repository) ConvertCart(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.
			Preload("Items").
			Preload("Items.Product").
			Where("user_id = ?", order.UserID).
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for i := range cart.Items {
			line := &cart.Items[i]
			if line.Product == nil {
				return gorm.ErrRecordNotFound
			}
			lineTotal := line.Product.DiscountedPrice.Mul(decimalFromInt(line.Quantity))
			items = append(items, models.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: lineTotal,
			})
			order.OrderAmount = order.OrderAmount.Add(lineTotal)
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, order.ID)
}

// Save persists changes to an existing order.
func (r *Repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "User").Save(order).Error
}

// Delete removes the order row; order items cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}

// FindByID loads an order with its lines and products.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a page of orders plus the total count.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Scopes(page.Scope()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByUserID returns every order the user has placed, newest first.
func (r *Repository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("ordered_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
