package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}
