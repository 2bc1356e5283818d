package orders

import (
	"context"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

// OutboxEvent is a pending order-created notification awaiting publication.
type OutboxEvent struct {
	ID        string    `bson:"_id"`
	OrderID   string    `bson:"order_id"`
	EventType string    `bson:"event_type"`
	Payload   []byte    `bson:"payload"`
	Published bool      `bson:"published"`
	CreatedAt time.Time `bson:"created_at"`
}

// OrderRepository defines the interface for the append-only order store.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetUnpublishedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventPublished(ctx context.Context, eventID string) error
}
