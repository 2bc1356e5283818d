package checkout

import (
	"context"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/domain"
)

// TaxRate is applied to the cart subtotal at checkout time.
const TaxRate = 0.10

// Collector runs the processor's hosted payment-collection UI. Card data
// never crosses into this system; the collector only reports success or a
// user-displayable failure.
type Collector interface {
	Collect(ctx context.Context, clientSecret string) error
}

type IntentCreator interface {
	CreateIntent(ctx context.Context, amount float64, items []domain.OrderItem) (*IntentResult, error)
}

type Finalizer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (string, error)
}

// Orchestrator drives the client side of one checkout attempt over a cart:
// Start requests the intent, Collect hands the secret to the processor's UI,
// Finalize persists the order and, after a fixed display delay, clears the
// cart for the return to the catalog.
type Orchestrator struct {
	cart         *cart.Cart
	intents      IntentCreator
	collector    Collector
	finalizer    Finalizer
	displayDelay time.Duration

	attempt *Attempt
	intent  *IntentResult
}

func NewOrchestrator(c *cart.Cart, intents IntentCreator, collector Collector, finalizer Finalizer, displayDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		cart:         c,
		intents:      intents,
		collector:    collector,
		finalizer:    finalizer,
		displayDelay: displayDelay,
		attempt:      NewAttempt(),
	}
}

func (o *Orchestrator) Status() Status {
	return o.attempt.Status()
}

// Failure returns the user-displayable message from a failed collection.
func (o *Orchestrator) Failure() string {
	return o.attempt.Failure()
}

func (o *Orchestrator) Subtotal() float64 {
	return o.cart.Subtotal()
}

func (o *Orchestrator) Tax() float64 {
	return o.cart.Subtotal() * TaxRate
}

func (o *Orchestrator) Total() float64 {
	return o.cart.Subtotal() + o.Tax()
}

// Start requests a payment intent for the finalized amount. A refusal from
// the processor is surfaced as-is and the attempt stays at IDLE; the user may
// simply try again.
func (o *Orchestrator) Start(ctx context.Context) error {
	if o.cart.IsEmpty() {
		return ErrEmptyCart
	}

	result, err := o.intents.CreateIntent(ctx, o.Total(), o.cart.Items())
	if err != nil {
		return err
	}

	if err := o.attempt.transition(StatusInitiated); err != nil {
		return err
	}
	o.intent = result
	return nil
}

// Collect hands the client secret to the processor's collection UI. On
// failure the attempt is terminally FAILED and the error carries the
// user-displayable reason; no further action is taken.
func (o *Orchestrator) Collect(ctx context.Context) error {
	if err := o.attempt.transition(StatusCollecting); err != nil {
		return err
	}

	if err := o.collector.Collect(ctx, o.intent.ClientSecret); err != nil {
		if failErr := o.attempt.fail(err.Error()); failErr != nil {
			return failErr
		}
		return err
	}

	return o.attempt.transition(StatusConfirmed)
}

// Finalize persists the order for a confirmed collection, then waits out the
// success display before clearing the cart. Calling it from any state other
// than CONFIRMED is an illegal transition, so an order can never be written
// without a successful Collect in the same attempt.
func (o *Orchestrator) Finalize(ctx context.Context, customerEmail string) (string, error) {
	if !CanTransitionTo(o.attempt.Status(), StatusOrderPersisted) {
		return "", ErrIllegalTransition
	}

	orderID, err := o.finalizer.Confirm(ctx, ConfirmRequest{
		PaymentIntentID: o.intent.PaymentIntentID,
		Items:           o.cart.Items(),
		TotalAmount:     o.Total(),
		CustomerEmail:   customerEmail,
	})
	if err != nil {
		return "", err
	}

	if err := o.attempt.transition(StatusOrderPersisted); err != nil {
		return "", err
	}
	o.intent = nil // the handle is consumed exactly once

	select {
	case <-time.After(o.displayDelay):
	case <-ctx.Done():
	}
	o.cart.Clear()

	return orderID, nil
}
