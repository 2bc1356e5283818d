package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo  ProductRepository
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo ProductRepository, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	// Use singleflight to collapse concurrent cache misses into one repo read
	v, err, _ := s.sfg.Do(productsKey, func() (interface{}, error) {

		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil // list is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		products, errList := s.repo.ListProducts(ctx)
		if errList != nil {
			return nil, errList
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), products)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		log.Printf("repo create product error: %v \n", err)
		return err
	}

	invalidateCache(s)
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Printf("repo update product error: %v \n", err)
		}
		return nil, err
	}

	invalidateCache(s)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Printf("repo delete product error: %v \n", err)
		}
		return err
	}

	invalidateCache(s)
	return nil
}

func invalidateCache(s *Service) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
