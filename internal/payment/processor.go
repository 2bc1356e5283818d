package payment

import (
	"context"
	"math"
)

// Intent is the processor-issued handle for one charge attempt. The client
// secret is handed to the processor's hosted collection UI and consumed once.
type Intent struct {
	ID           string
	ClientSecret string
}

// Processor defines the interface for the external payment provider.
// Consumers define this interface, not the Stripe implementation.
type Processor interface {
	CreateIntent(ctx context.Context, amount float64) (*Intent, error)
}

// Cents converts a decimal dollar amount to integer cents, rounding half up
// the same way the processor expects.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
