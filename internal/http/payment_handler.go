package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
)

// CheckoutService defines what the payment handlers need from the checkout
// sequencing layer.
type CheckoutService interface {
	CreateIntent(ctx context.Context, amount float64, items []domain.OrderItem) (*checkout.IntentResult, error)
	Confirm(ctx context.Context, req checkout.ConfirmRequest) (string, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type PaymentHandler struct {
	service CheckoutService
	timeout time.Duration
}

func NewPaymentHandler(service CheckoutService, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		timeout: timeout,
	}
}

type CreateIntentRequestDTO struct {
	Amount float64            `json:"amount"`
	Items  []domain.OrderItem `json:"items"`
}

type CreateIntentResponseDTO struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type ConfirmRequestDTO struct {
	PaymentIntentID string             `json:"paymentIntentId"`
	Items           []domain.OrderItem `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	CustomerEmail   string             `json:"customerEmail"`
}

type ConfirmResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// POST /payment/create-payment-intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateIntentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.service.CreateIntent(ctx, req.Amount, req.Items)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CreateIntentResponseDTO{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
	})
}

// POST /payment/confirm
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orderID, err := h.service.Confirm(ctx, checkout.ConfirmRequest{
		PaymentIntentID: req.PaymentIntentID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		CustomerEmail:   req.CustomerEmail,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ConfirmResponseDTO{
		Success: true,
		Message: "Payment successful",
		OrderID: orderID,
	})
}

// GET /payment/orders
func (h *PaymentHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	list, err := h.service.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}
