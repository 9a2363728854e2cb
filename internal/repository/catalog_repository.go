package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// CatalogRepositoryInterface exposes the reference-data lookups the import
// reconciler depends on. Categories and brands are fetched whole so the run
// can index them once; sub- and child-categories are looked up live because
// they are scoped by their parent.
type CatalogRepositoryInterface interface {
	GetAllCategories() ([]models.Category, error)
	GetAllBrands() ([]models.Brand, error)
	GetSubCategoryByName(name string, categoryID uint) (*models.SubCategory, error)
	GetChildCategoryByName(name string, subCategoryID uint) (*models.ChildCategory, error)
}

type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB, redis *redis.Client) *CatalogRepository {
	return &CatalogRepository{
		db:    db,
		redis: redis,
	}
}

// invalidateCategoryCaches drops the cached category tree after a write
func (r *CatalogRepository) invalidateCategoryCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, "categories:all", "brands:all")
}

// GetAllCategories returns every category, for building the per-run reference index
func (r *CatalogRepository) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetAllBrands returns every brand, for building the per-run reference index
func (r *CatalogRepository) GetAllBrands() ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// GetSubCategoryByName retrieves a sub-category by exact name scoped to its
// parent category.
func (r *CatalogRepository) GetSubCategoryByName(name string, categoryID uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	err := r.db.Where("name = ? AND category_id = ?", name, categoryID).First(&subCategory).Error
	if err != nil {
		return nil, err
	}
	return &subCategory, nil
}

// GetChildCategoryByName retrieves a child-category by exact name scoped to
// its parent sub-category.
func (r *CatalogRepository) GetChildCategoryByName(name string, subCategoryID uint) (*models.ChildCategory, error) {
	var childCategory models.ChildCategory
	err := r.db.Where("name = ? AND sub_category_id = ?", name, subCategoryID).First(&childCategory).Error
	if err != nil {
		return nil, err
	}
	return &childCategory, nil
}

// GetCategories retrieves all categories with their sub-categories, cached
func (r *CatalogRepository) GetCategories() ([]models.Category, error) {
	ctx := context.Background()
	cacheKey := "categories:all"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := r.db.Preload("SubCategories").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(categories); err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return categories, nil
}

// CreateCategory creates a new category
func (r *CatalogRepository) CreateCategory(category *models.Category) error {
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	if category.Slug == "" {
		category.Slug = GenerateSlug(category.Name)
	}

	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background())
	}
	return err
}

// DeleteCategory soft deletes a category
func (r *CatalogRepository) DeleteCategory(categoryID uint) error {
	err := r.db.Where("id = ?", categoryID).Delete(&models.Category{}).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background())
	}
	return err
}

// GetSubCategories retrieves sub-categories scoped to a category
func (r *CatalogRepository) GetSubCategories(categoryID uint) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	err := r.db.Where("category_id = ?", categoryID).Order("name ASC").Find(&subCategories).Error
	return subCategories, err
}

// CreateSubCategory creates a new sub-category
func (r *CatalogRepository) CreateSubCategory(subCategory *models.SubCategory) error {
	subCategory.CreatedAt = time.Now()
	subCategory.UpdatedAt = time.Now()
	if subCategory.Slug == "" {
		subCategory.Slug = GenerateSlug(subCategory.Name)
	}

	// Parent must exist; scoped uniqueness is enforced by the index
	var parent models.Category
	if err := r.db.Where("id = ?", subCategory.CategoryID).First(&parent).Error; err != nil {
		return fmt.Errorf("parent category %d: %w", subCategory.CategoryID, err)
	}

	err := r.db.Create(subCategory).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background())
	}
	return err
}

// GetChildCategories retrieves child-categories scoped to a sub-category
func (r *CatalogRepository) GetChildCategories(subCategoryID uint) ([]models.ChildCategory, error) {
	var childCategories []models.ChildCategory
	err := r.db.Where("sub_category_id = ?", subCategoryID).Order("name ASC").Find(&childCategories).Error
	return childCategories, err
}

// CreateChildCategory creates a new child-category
func (r *CatalogRepository) CreateChildCategory(childCategory *models.ChildCategory) error {
	childCategory.CreatedAt = time.Now()
	childCategory.UpdatedAt = time.Now()
	if childCategory.Slug == "" {
		childCategory.Slug = GenerateSlug(childCategory.Name)
	}

	var parent models.SubCategory
	if err := r.db.Where("id = ? AND category_id = ?", childCategory.SubCategoryID, childCategory.CategoryID).First(&parent).Error; err != nil {
		return fmt.Errorf("parent sub-category %d: %w", childCategory.SubCategoryID, err)
	}

	err := r.db.Create(childCategory).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background())
	}
	return err
}

// GetBrands retrieves all brands, cached
func (r *CatalogRepository) GetBrands() ([]models.Brand, error) {
	ctx := context.Background()
	cacheKey := "brands:all"

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var brands []models.Brand
			if err := json.Unmarshal([]byte(val), &brands); err == nil {
				return brands, nil
			}
		}
	}

	var brands []models.Brand
	if err := r.db.Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(brands); err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return brands, nil
}

// CreateBrand creates a new brand
func (r *CatalogRepository) CreateBrand(brand *models.Brand) error {
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = time.Now()
	if brand.Slug == "" {
		brand.Slug = GenerateSlug(brand.Name)
	}

	err := r.db.Create(brand).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background())
	}
	return err
}
