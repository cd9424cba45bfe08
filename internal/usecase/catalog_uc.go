// internal/usecase/catalog_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autoparts-api/internal/cache"
	"autoparts-api/internal/domain"
	"autoparts-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	catalogNamespace = "catalog"
	catalogListKey   = "products"
	catalogTTL       = 60 * time.Second
)

type CatalogUsecase struct {
	productRepo repository.ProductRepository
	cache       *cache.Cache
	logger      *zap.Logger
}

func NewCatalogUsecase(productRepo repository.ProductRepository, c *cache.Cache, logger *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo: productRepo,
		cache:       c,
		logger:      logger,
	}
}

// ListProducts serves the catalog through a short-lived Redis cache.
// Cache failures degrade to the database.
func (uc *CatalogUsecase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, catalogNamespace, catalogListKey)
		if err != nil {
			uc.logger.Warn("catalog cache read failed", zap.Error(err))
		} else if cached != "" {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
			uc.logger.Warn("discarding undecodable catalog cache entry", zap.Error(err))
		}
	}

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		uc.logger.Error("failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(products); err == nil {
			if err := uc.cache.Set(ctx, catalogNamespace, catalogListKey, string(encoded), catalogTTL); err != nil {
				uc.logger.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}

	return products, nil
}

func (uc *CatalogUsecase) CreateProduct(ctx context.Context, vendorID string, req *domain.CreateProductRequest) (*domain.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	compatibility := req.Compatibility
	if compatibility == nil {
		compatibility = []string{}
	}
	specs := req.Specs
	if specs == nil {
		specs = map[string]string{}
	}

	product := &domain.Product{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Image:         req.Image,
		Category:      req.Category,
		Brand:         req.Brand,
		PartNumber:    req.PartNumber,
		Compatibility: compatibility,
		InStock:       inStock,
		Specs:         specs,
		VendorID:      vendorID,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		uc.logger.Error("failed to create product",
			zap.String("vendor_id", vendorID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, catalogNamespace, catalogListKey); err != nil {
			uc.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}

	uc.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("vendor_id", vendorID))

	return product, nil
}
