package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderCreatedEvent = "order.created"

type mongoRepository struct {
	orders *mongo.Collection
	outbox *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) OrderRepository {
	return &mongoRepository{
		orders: db.Collection("orders"),
		outbox: db.Collection("order_outbox"),
	}
}

func (m *mongoRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	order.CreatedAt = time.Now()

	result, err := m.orders.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}

	// The order write is the source of truth; a failed outbox insert loses
	// one notification, not the order.
	if err := m.enqueueEvent(ctx, order); err != nil {
		log.Printf("failed to enqueue outbox event for order %v: %v", order.ID.Hex(), err)
	}

	return nil
}

func (m *mongoRepository) enqueueEvent(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":       order.ID.Hex(),
		"items":          order.Items,
		"total_amount":   order.TotalAmount,
		"currency":       "usd",
		"customer_email": order.CustomerEmail,
		"completed_at":   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	event := &OutboxEvent{
		ID:        uuid.NewString(),
		OrderID:   order.ID.Hex(),
		EventType: orderCreatedEvent,
		Payload:   payload,
		Published: false,
		CreatedAt: time.Now(),
	}

	if _, err := m.outbox.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

func (m *mongoRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]domain.Order, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return list, nil
}

func (m *mongoRepository) GetUnpublishedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.outbox.Find(ctx, bson.M{"published": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*OutboxEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}

	return events, nil
}

func (m *mongoRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	update := bson.M{"$set": bson.M{"published": true}}

	result, err := m.outbox.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark event published: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("outbox event %s not found", eventID)
	}
	return nil
}

// EnsureIndexes creates the order and outbox indexes at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	m := &mongoRepository{
		orders: db.Collection("orders"),
		outbox: db.Collection("order_outbox"),
	}
	return m.CreateIndexes(ctx)
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create orders index: %w", err)
	}

	_, err = m.outbox.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create outbox index: %w", err)
	}

	return nil
}
