package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

type StripeProcessor struct {
	api     *client.API
	breaker *gobreaker.CircuitBreaker[*stripe.PaymentIntent]
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	api := &client.API{}
	api.Init(strings.TrimSpace(secretKey), nil)

	breaker := gobreaker.NewCircuitBreaker[*stripe.PaymentIntent](gobreaker.Settings{
		Name: "stripe",
	})

	return &StripeProcessor{
		api:     api,
		breaker: breaker,
	}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, amount float64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(Cents(amount)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := p.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		return p.api.PaymentIntents.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
