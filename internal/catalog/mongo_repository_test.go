package catalog

import (
	"context"
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupTestDB(t *testing.T) (ProductRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := storage.ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	require.NoError(t, EnsureIndexes(ctx, db))
	repo := NewMongoRepository(db)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestListProducts_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	products, err := repo.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateProduct_AssignsIDAndTimestamps(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.Product{
		Name:        "Laptop",
		Description: "A powerful laptop",
		Price:       1299.99,
		Stock:       5,
		Category:    "electronics",
	}

	err := repo.CreateProduct(ctx, product)
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	assert.False(t, product.CreatedAt.IsZero())

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, 5, products[0].Stock)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.Product{Name: "Mouse", Description: "Wireless mouse", Price: 29.99, Category: "electronics"}
	require.NoError(t, repo.CreateProduct(ctx, product))

	price := 19.99
	updated, err := repo.UpdateProduct(ctx, product.ID, domain.ProductPatch{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, "Wireless mouse", updated.Description)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	name := "Renamed"
	_, err := repo.UpdateProduct(ctx, primitive.NewObjectID(), domain.ProductPatch{Name: &name})

	assert.ErrorIs(t, err, ErrProductNotFound)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "a failed update must leave the catalog unchanged")
}

func TestDeleteProduct_RemovesRecord(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	product := &domain.Product{Name: "Mug", Description: "Ceramic", Price: 8.99, Category: "kitchen"}
	require.NoError(t, repo.CreateProduct(ctx, product))

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRepositoryDeleteProduct_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteProduct(context.Background(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrProductNotFound)
}
