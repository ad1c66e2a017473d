package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/pagination"
)

const orderNotFoundMessage = "order not found"

// Service defines the behavior needed by the orders controller.
type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, page pagination.Params) (pagination.Page[OrderDTO], error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	UpdateByAdmin(ctx context.Context, id uuid.UUID, req AdminUpdateOrderRequest) (*OrderDTO, error)
	UpdateBilling(ctx context.Context, id, userID uuid.UUID, req UpdateBillingRequest) (*OrderDTO, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	ConvertCart(ctx context.Context, order *models.Order) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, page pagination.Params) ([]models.Order, int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo  repository
	users userRepository
	now   func() time.Time
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo     repository
	UserRepo userRepository
	Now      func() time.Time
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, users: params.UserRepo, now: now}, nil
}

func (s *service) Create(ctx context.Context, req CreateOrderRequest) (*OrderDTO, error) {
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	orderStatus := enums.OrderStatusPending
	if req.OrderStatus != nil {
		parsed, err := enums.ParseOrderStatus(*req.OrderStatus)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
		}
		orderStatus = parsed
	}
	paymentStatus := enums.PaymentStatusNotPaid
	if req.PaymentStatus != nil {
		parsed, err := enums.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		paymentStatus = parsed
	}

	order := &models.Order{
		ID:             uuid.New(),
		UserID:         req.UserID,
		OrderStatus:    orderStatus,
		PaymentStatus:  paymentStatus,
		BillingName:    strings.TrimSpace(req.BillingName),
		BillingPhone:   strings.TrimSpace(req.BillingPhone),
		BillingAddress: strings.TrimSpace(req.BillingAddress),
		OrderedAt:      s.now().UTC(),
	}

	created, err := s.repo.ConvertCart(ctx, order)
	if err != nil {
		switch {
		case errors.Is(err, ErrCartNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		case errors.Is(err, ErrEmptyCart):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert cart to order")
	}
	return FromModel(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (pagination.Page[OrderDTO], error) {
	page = page.Normalize("ordered_at", "order_amount", "order_status", "created_at")
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return pagination.Page[OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, page, total), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) UpdateByAdmin(ctx context.Context, id uuid.UUID, req AdminUpdateOrderRequest) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OrderStatus != nil {
		status, err := enums.ParseOrderStatus(*req.OrderStatus)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
		}
		order.OrderStatus = status
		if status == enums.OrderStatusDelivered && order.DeliveredAt == nil {
			deliveredAt := s.now().UTC()
			order.DeliveredAt = &deliveredAt
		}
	}
	if req.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		order.PaymentStatus = status
	}
	if req.DeliveredAt != nil {
		order.DeliveredAt = req.DeliveredAt
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}
	return FromModel(order), nil
}

func (s *service) UpdateBilling(ctx context.Context, id, userID uuid.UUID, req UpdateBillingRequest) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}

	if req.BillingName != nil {
		order.BillingName = strings.TrimSpace(*req.BillingName)
	}
	if req.BillingPhone != nil {
		order.BillingPhone = strings.TrimSpace(*req.BillingPhone)
	}
	if req.BillingAddress != nil {
		order.BillingAddress = strings.TrimSpace(*req.BillingAddress)
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order billing")
	}
	return FromModel(order), nil
}

func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findOrder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	return nil
}

func (s *service) findOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup order")
	}
	return order, nil
}
