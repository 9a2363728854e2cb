package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL  = 5 * time.Minute
	CategoryCacheTTL = 30 * time.Minute // Categories rarely change
)

// ProductsRepositoryInterface exposes the persistence primitives the import
// reconciler and the handlers depend on.
type ProductsRepositoryInterface interface {
	CreateProduct(product *models.Product) error
	GetProductByID(productID uuid.UUID) (*models.Product, error)
	GetProductBySlug(slug string) (*models.Product, error)
	GetProductByCode(code int) (*models.Product, error)
	UpdateProductByCode(code int, updates map[string]interface{}) error
	UpdateProduct(productID uuid.UUID, updates map[string]interface{}) error
	DeleteProduct(productID uuid.UUID) error
	GetProducts(req *models.ListProductsRequest) ([]models.Product, int64, error)
	SlugExists(slug string) (bool, error)
}

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ ProductsRepositoryInterface = (*ProductsRepository)(nil)

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{
		db:    db,
		redis: redis,
	}
}

// invalidateProductCaches removes cached copies of a product after a write
func (r *ProductsRepository) invalidateProductCaches(ctx context.Context, product *models.Product) {
	if r.redis == nil || product == nil {
		return
	}
	keys := []string{fmt.Sprintf("product:id:%s", product.ID.String())}
	if product.Slug != nil {
		keys = append(keys, fmt.Sprintf("product:slug:%s", *product.Slug))
	}
	r.redis.Del(ctx, keys...)
}

// CreateProduct creates a new product, generating a collision-safe slug from
// the name when none is supplied. A taken base slug gets a short unique suffix
// rather than failing the insert.
func (r *ProductsRepository) CreateProduct(product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	if product.Slug == nil || *product.Slug == "" {
		baseSlug := GenerateSlug(product.Name)
		slug := baseSlug
		taken, err := r.SlugExists(slug)
		if err != nil {
			return err
		}
		if taken {
			slug = fmt.Sprintf("%s-%s", baseSlug, product.ID.String()[:8])
		}
		product.Slug = &slug
	}

	return r.db.Create(product).Error
}

// GetProductByID retrieves a product by ID with caching
func (r *ProductsRepository) GetProductByID(productID uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("product:id:%s", productID.String())

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// GetProductBySlug retrieves a product by its slug with caching
func (r *ProductsRepository) GetProductBySlug(slug string) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("product:slug:%s", slug)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// GetProductByCode retrieves a product by its external import code. The code
// is the stable upsert key for spreadsheet imports, so this read is never
// served from cache.
func (r *ProductsRepository) GetProductByCode(code int) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductByCode updates the mutable fields of the product carrying the
// given code.
func (r *ProductsRepository) UpdateProductByCode(code int, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	var product models.Product
	if err := r.db.Where("code = ?", code).First(&product).Error; err != nil {
		return err
	}

	if err := r.db.Model(&models.Product{}).Where("code = ?", code).Updates(updates).Error; err != nil {
		return err
	}

	r.invalidateProductCaches(context.Background(), &product)
	return nil
}

// UpdateProduct updates a product by ID and invalidates its cache entries
func (r *ProductsRepository) UpdateProduct(productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return err
	}

	if err := r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates).Error; err != nil {
		return err
	}

	r.invalidateProductCaches(context.Background(), &product)
	return nil
}

// DeleteProduct soft deletes a product
func (r *ProductsRepository) DeleteProduct(productID uuid.UUID) error {
	var product models.Product
	if err := r.db.Where("id = ?", productID).First(&product).Error; err != nil {
		return err
	}

	if err := r.db.Where("id = ?", productID).Delete(&models.Product{}).Error; err != nil {
		return err
	}

	r.invalidateProductCaches(context.Background(), &product)
	return nil
}

// GetProducts retrieves products with filters and pagination
func (r *ProductsRepository) GetProducts(req *models.ListProductsRequest) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})

	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}
	if req.BrandID != nil {
		query = query.Where("brand_id = ?", *req.BrandID)
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	if req.Search != nil && *req.Search != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*req.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// SlugExists reports whether any product (including soft-deleted ones, which
// still hold the unique index slot) already uses the slug.
func (r *ProductsRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// GenerateSlug creates a URL-friendly slug from a name
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
