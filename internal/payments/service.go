package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/internal/orders"
	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
)

// Service defines the behavior needed by the payments controller.
type Service interface {
	Initiate(ctx context.Context, orderID uuid.UUID) (*InitiatePaymentResponse, error)
	Capture(ctx context.Context, orderID uuid.UUID, req CapturePaymentRequest) (*orders.OrderDTO, error)
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
}

type service struct {
	orders   orderRepository
	provider Provider
	cfg      config.PaymentConfig
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	OrderRepo orderRepository
	Provider  Provider
	Config    config.PaymentConfig
}

// NewService constructs a payments service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Provider == nil {
		return nil, fmt.Errorf("payment provider is required")
	}
	return &service{
		orders:   params.OrderRepo,
		provider: params.Provider,
		cfg:      params.Config,
	}, nil
}

func (s *service) Initiate(ctx context.Context, orderID uuid.UUID) (*InitiatePaymentResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == enums.PaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
	}

	providerOrder, err := s.provider.CreateOrder(ctx, ProviderOrderRequest{
		AmountMinor: toMinorUnits(order.OrderAmount),
		Currency:    s.cfg.Currency,
		Receipt:     order.ID.String(),
	})
	if err != nil {
		return nil, err
	}

	order.ProviderOrderID = &providerOrder.ID
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store gateway order id")
	}

	return &InitiatePaymentResponse{
		OrderID:         order.ID.String(),
		ProviderOrderID: providerOrder.ID,
		AmountMinor:     providerOrder.AmountMinor,
		Currency:        providerOrder.Currency,
		KeyID:           s.cfg.KeyID,
	}, nil
}

func (s *service) Capture(ctx context.Context, orderID uuid.UUID, req CapturePaymentRequest) (*orders.OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == enums.PaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
	}
	if order.ProviderOrderID == nil || *order.ProviderOrderID != req.ProviderOrderID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gateway order id does not match this order")
	}
	if !s.provider.VerifySignature(req.ProviderOrderID, req.PaymentID, req.Signature) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "payment signature rejected")
	}

	paymentID := req.PaymentID
	order.ProviderPaymentID = &paymentID
	order.PaymentStatus = enums.PaymentStatusPaid
	if order.OrderStatus == enums.OrderStatusPending {
		order.OrderStatus = enums.OrderStatusConfirmed
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record captured payment")
	}
	return orders.FromModel(order), nil
}

func (s *service) findOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup order")
	}
	return order, nil
}

// toMinorUnits converts a major-unit amount to the gateway's integer minor
// units (for INR, rupees to paise).
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
