package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/orders"
	"github.com/fjod/go_storefront/internal/payment"
)

var (
	ErrNotConfigured = errors.New("payment system not configured")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
)

type IntentResult struct {
	ClientSecret    string
	PaymentIntentID string
}

type ConfirmRequest struct {
	PaymentIntentID string
	Items           []domain.OrderItem
	TotalAmount     float64
	CustomerEmail   string
}

// Service sequences the server half of a checkout: issue a payment intent,
// and after the client reports successful collection, persist the order.
type Service struct {
	processor payment.Processor // nil when no secret key is configured
	orders    orders.OrderRepository
}

func NewService(processor payment.Processor, repo orders.OrderRepository) *Service {
	return &Service{
		processor: processor,
		orders:    repo,
	}
}

func (s *Service) CreateIntent(ctx context.Context, amount float64, items []domain.OrderItem) (*IntentResult, error) {
	if s.processor == nil {
		return nil, ErrNotConfigured
	}

	if amount <= 0 || math.IsNaN(amount) {
		return nil, ErrInvalidAmount
	}

	intent, err := s.processor.CreateIntent(ctx, amount)
	if err != nil {
		log.Printf("processor create intent error: %v", err)
		return nil, err
	}

	log.Printf("payment intent created id = %v for %d items", intent.ID, len(items))

	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// Confirm trusts the caller's word that collection succeeded; there is no
// re-verification against the processor before the order is written.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (string, error) {
	order := &domain.Order{
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		PaymentIntentID: req.PaymentIntentID,
		CustomerEmail:   req.CustomerEmail,
		Status:          domain.OrderStatusCompleted,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("failed to persist order: %w", err)
	}

	log.Printf("order saved successfully: %v", order.ID.Hex())
	return order.ID.Hex(), nil
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}
