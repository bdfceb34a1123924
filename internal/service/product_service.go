package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"digimart/internal/cache"
	apperrors "digimart/internal/errors"
	"digimart/internal/model"
	"digimart/internal/repository"
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// ProductInput carries the writable fields of a product. Discount bounds are
// enforced at the request boundary; the store itself stays permissive.
type ProductInput struct {
	Name         string
	Price        decimal.Decimal
	Image        string
	Description  string
	DownloadLink string
	Discount     int
}

// ProductService handles catalog operations. Listing is public; every
// mutation is admin-gated at the router.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewProductService creates a new catalog service.
func NewProductService(productRepo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// List returns the full catalog, served from cache when possible.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	var cached []model.Product
	if hit, _ := s.cache.GetJSON(ctx, catalogCacheKey, &cached); hit {
		return cached, nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	_ = s.cache.SetJSON(ctx, catalogCacheKey, products, catalogCacheTTL)
	return products, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:         input.Name,
		Price:        input.Price,
		Image:        input.Image,
		Description:  input.Description,
		DownloadLink: input.DownloadLink,
		Discount:     input.Discount,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Image = input.Image
	product.Description = input.Description
	product.DownloadLink = input.DownloadLink
	product.Discount = input.Discount

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return product, nil
}

// Delete removes a product from the catalog. Payments that referenced it keep
// their dangling item rows.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return nil
}
