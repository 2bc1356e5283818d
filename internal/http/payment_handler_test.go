package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CheckoutServiceMock struct {
	intent     *checkout.IntentResult
	orderID    string
	orders     []domain.Order
	err        error
	lastAmount float64
	lastReq    checkout.ConfirmRequest
}

func (m *CheckoutServiceMock) CreateIntent(_ context.Context, amount float64, _ []domain.OrderItem) (*checkout.IntentResult, error) {
	m.lastAmount = amount
	if m.err != nil {
		return nil, m.err
	}
	return m.intent, nil
}

func (m *CheckoutServiceMock) Confirm(_ context.Context, req checkout.ConfirmRequest) (string, error) {
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

func (m *CheckoutServiceMock) ListOrders(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func newPaymentRouter(mock *CheckoutServiceMock) http.Handler {
	handler := NewPaymentHandler(mock, 5*time.Second)
	r := chi.NewRouter()
	r.Post("/payment/create-payment-intent", handler.CreateIntent)
	r.Post("/payment/confirm", handler.Confirm)
	r.Get("/payment/orders", handler.ListOrders)
	return r
}

func TestCreateIntent_Success(t *testing.T) {
	mock := &CheckoutServiceMock{
		intent: &checkout.IntentResult{ClientSecret: "pi_1_secret_abc", PaymentIntentID: "pi_1"},
	}

	body := `{"amount":44.00,"items":[{"productId":"p1","name":"Phone","price":20.00,"quantity":2}]}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/create-payment-intent", strings.NewReader(body))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.lastAmount != 44.00 {
		t.Errorf("Expected amount 44.00 passed to service, got %f", mock.lastAmount)
	}

	var response CreateIntentResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ClientSecret != "pi_1_secret_abc" {
		t.Errorf("Expected client secret 'pi_1_secret_abc', got '%s'", response.ClientSecret)
	}
	if response.PaymentIntentID != "pi_1" {
		t.Errorf("Expected payment intent id 'pi_1', got '%s'", response.PaymentIntentID)
	}
}

func TestCreateIntent_InvalidAmount(t *testing.T) {
	mock := &CheckoutServiceMock{err: checkout.ErrInvalidAmount}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/create-payment-intent", strings.NewReader(`{"amount":0}`))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error != "Invalid amount" {
		t.Errorf("Expected error 'Invalid amount', got '%s'", response.Error)
	}
}

func TestCreateIntent_NotConfigured(t *testing.T) {
	mock := &CheckoutServiceMock{err: checkout.ErrNotConfigured}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/create-payment-intent", strings.NewReader(`{"amount":44.00}`))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error != "Payment system not configured" {
		t.Errorf("Expected error 'Payment system not configured', got '%s'", response.Error)
	}
}

func TestCreateIntent_ProcessorError(t *testing.T) {
	mock := &CheckoutServiceMock{err: errors.New("stripe: connection refused")}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/create-payment-intent", strings.NewReader(`{"amount":44.00}`))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Error != "stripe: connection refused" {
		t.Errorf("Expected verbatim error message, got '%s'", response.Error)
	}
}

func TestCreateIntent_InvalidJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/create-payment-intent", strings.NewReader("{not json"))
	newPaymentRouter(&CheckoutServiceMock{}).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestConfirm_Success(t *testing.T) {
	mock := &CheckoutServiceMock{orderID: "66f0a1b2c3d4e5f607182930"}

	body := `{
		"paymentIntentId": "pi_1",
		"items": [{"productId":"p1","name":"Phone","price":20.00,"quantity":2}],
		"totalAmount": 44.00,
		"customerEmail": "buyer@example.com"
	}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/confirm", strings.NewReader(body))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response ConfirmResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Success {
		t.Error("Expected success=true")
	}
	if response.OrderID != "66f0a1b2c3d4e5f607182930" {
		t.Errorf("Expected order id '66f0a1b2c3d4e5f607182930', got '%s'", response.OrderID)
	}

	if mock.lastReq.PaymentIntentID != "pi_1" {
		t.Errorf("Expected payment intent id 'pi_1' passed to service, got '%s'", mock.lastReq.PaymentIntentID)
	}
	if mock.lastReq.CustomerEmail != "buyer@example.com" {
		t.Errorf("Expected customer email forwarded, got '%s'", mock.lastReq.CustomerEmail)
	}
	if len(mock.lastReq.Items) != 1 || mock.lastReq.Items[0].Quantity != 2 {
		t.Errorf("Expected order items forwarded, got %+v", mock.lastReq.Items)
	}
}

func TestConfirm_PersistenceError(t *testing.T) {
	mock := &CheckoutServiceMock{err: errors.New("write concern timeout")}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/payment/confirm", strings.NewReader(`{"paymentIntentId":"pi_1"}`))
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestListOrders_Passthrough(t *testing.T) {
	mock := &CheckoutServiceMock{
		orders: []domain.Order{
			{PaymentIntentID: "pi_2", TotalAmount: 44.00, Status: domain.OrderStatusCompleted},
			{PaymentIntentID: "pi_1", TotalAmount: 11.00, Status: domain.OrderStatusCompleted},
		},
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/payment/orders", nil)
	newPaymentRouter(mock).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(response))
	}
	if response[0].PaymentIntentID != "pi_2" {
		t.Errorf("Expected order ordering preserved, got '%s' first", response[0].PaymentIntentID)
	}
}
