package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// Every imported row is written with these fixed brand/vendor identifiers.
// The brand column is still indexed per run, but rows do not resolve against
// it; restoring per-row brand resolution is a deliberate behavior change that
// must not happen silently.
const (
	placeholderBrandID  uint = 1
	placeholderVendorID uint = 1
)

// headerOffset converts a 0-based data row index into the 1-based line number
// of the uploaded file. Line 1 is the header, so the first data row is line 2.
const headerOffset = 2

// ImportService reconciles spreadsheet rows against the catalog: it validates
// each row, resolves its textual category references to foreign keys, and
// upserts the product keyed by its external code. Row failures are collected;
// they never abort the batch.
type ImportService struct {
	catalog  repository.CatalogRepositoryInterface
	products repository.ProductsRepositoryInterface
	logger   *logrus.Logger
}

// NewImportService creates a new ImportService
func NewImportService(catalog repository.CatalogRepositoryInterface, products repository.ProductsRepositoryInterface, logger *logrus.Logger) *ImportService {
	return &ImportService{
		catalog:  catalog,
		products: products,
		logger:   logger,
	}
}

// ReferenceIndex maps normalized category and brand names to their ids. It is
// built once per run from the full reference tables and is read-only for the
// run's duration; sub- and child-categories are not indexed because their
// lookups are scoped by parent.
type ReferenceIndex struct {
	Categories map[string]uint
	Brands     map[string]uint
}

// NormalizeName lowercases and trims a reference name before lookup
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildReferenceIndex prefetches all categories and brands into name→id maps
func (s *ImportService) BuildReferenceIndex() (*ReferenceIndex, error) {
	categories, err := s.catalog.GetAllCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	brands, err := s.catalog.GetAllBrands()
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}

	index := &ReferenceIndex{
		Categories: make(map[string]uint, len(categories)),
		Brands:     make(map[string]uint, len(brands)),
	}
	for _, category := range categories {
		index.Categories[NormalizeName(category.Name)] = category.ID
	}
	for _, brand := range brands {
		index.Brands[NormalizeName(brand.Name)] = brand.ID
	}

	return index, nil
}

// Run processes the batch sequentially, one attempt per row. Each row moves
// through validation, reference resolution and the upsert write; the first
// failure records a row error and skips to the next row. Rows written before
// a later failure stay committed.
func (s *ImportService) Run(rows []map[string]string) *models.ImportResult {
	result := &models.ImportResult{
		TotalRows: len(rows),
		Errors:    make([]models.ImportRowError, 0),
	}

	index, err := s.BuildReferenceIndex()
	if err != nil {
		// Without reference data no row can resolve; report it once at the
		// batch level (row 0) instead of once per row.
		result.Errors = append(result.Errors, models.ImportRowError{
			Row:    0,
			Errors: []string{err.Error()},
		})
		result.FailedCount = len(rows)
		return result
	}

	for i, row := range rows {
		rowNum := i + headerOffset

		if messages := validateRow(row); len(messages) > 0 {
			result.Errors = append(result.Errors, models.ImportRowError{Row: rowNum, Errors: messages})
			result.FailedCount++
			continue
		}

		product, messages := s.resolveRow(row, index)
		if len(messages) > 0 {
			result.Errors = append(result.Errors, models.ImportRowError{Row: rowNum, Errors: messages})
			result.FailedCount++
			continue
		}

		created, err := s.upsertProduct(product)
		if err != nil {
			// Storage failures are downgraded to row errors so the rest of
			// the batch still gets its attempt.
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:    rowNum,
				Errors: []string{fmt.Sprintf("Failed to save product: %v", err)},
			})
			result.FailedCount++
			continue
		}

		if created {
			result.CreatedCount++
		} else {
			result.UpdatedCount++
		}
	}

	result.Success = len(result.Errors) == 0

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"totalRows": result.TotalRows,
			"created":   result.CreatedCount,
			"updated":   result.UpdatedCount,
			"failed":    result.FailedCount,
		}).Info("product import run completed")
	}

	return result
}

// validateRow rejects structurally incomplete rows before any resolution is
// attempted. Only name and category are checked here; everything else
// surfaces through resolution or the write.
func validateRow(row map[string]string) []string {
	var messages []string
	if strings.TrimSpace(row["name"]) == "" {
		messages = append(messages, "Product name is required")
	}
	if strings.TrimSpace(row["category"]) == "" {
		messages = append(messages, "Category is required")
	}
	return messages
}

// resolveRow turns the row's textual references into a product ready to be
// written. Resolution is strictly sequential: category, then sub-category,
// then child-category; the first miss stops resolution for this row.
func (s *ImportService) resolveRow(row map[string]string, index *ReferenceIndex) (*models.Product, []string) {
	categoryName := strings.TrimSpace(row["category"])
	categoryID, ok := index.Categories[NormalizeName(categoryName)]
	if !ok {
		return nil, []string{fmt.Sprintf("Category '%s' not found", categoryName)}
	}

	subCategoryName := strings.TrimSpace(row["sub_category"])
	subCategory, err := s.catalog.GetSubCategoryByName(subCategoryName, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, []string{fmt.Sprintf("Sub-category '%s' not found in '%s'", subCategoryName, categoryName)}
		}
		return nil, []string{fmt.Sprintf("Sub-category lookup failed: %v", err)}
	}

	var childCategoryID *uint
	if childCategoryName := strings.TrimSpace(row["child_category"]); childCategoryName != "" {
		childCategory, err := s.catalog.GetChildCategoryByName(childCategoryName, subCategory.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, []string{fmt.Sprintf("Child-category '%s' not found", childCategoryName)}
			}
			return nil, []string{fmt.Sprintf("Child-category lookup failed: %v", err)}
		}
		childCategoryID = &childCategory.ID
	}

	subCategoryID := subCategory.ID
	product := &models.Product{
		Code:             parseInt(row["code"]),
		Name:             strings.TrimSpace(row["name"]),
		SKU:              strings.TrimSpace(row["sku"]),
		CategoryID:       categoryID,
		SubCategoryID:    &subCategoryID,
		ChildCategoryID:  childCategoryID,
		BrandID:          placeholderBrandID,
		VendorID:         placeholderVendorID,
		Qty:              parseInt(row["qty"]),
		Price:            parseFloat(row["price"]),
		ThumbImage:       strings.TrimSpace(row["thumb_image"]),
		ShortDescription: row["short_description"],
		LongDescription:  row["long_description"],
		Status:           parseTruthy(row["status"]),
		IsApproved:       parseTruthy(row["is_approved"]),
	}

	return product, nil
}

// upsertProduct writes the resolved row, keyed by the external code. Existing
// products get their mutable fields overwritten; the slug is only generated on
// create and never touched afterwards.
func (s *ImportService) upsertProduct(product *models.Product) (bool, error) {
	existing, err := s.products.GetProductByCode(product.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.products.CreateProduct(product); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, err
	}

	updates := map[string]interface{}{
		"name":              product.Name,
		"sku":               product.SKU,
		"category_id":       product.CategoryID,
		"sub_category_id":   product.SubCategoryID,
		"child_category_id": product.ChildCategoryID,
		"brand_id":          product.BrandID,
		"vendor_id":         product.VendorID,
		"qty":               product.Qty,
		"price":             product.Price,
		"thumb_image":       product.ThumbImage,
		"short_description": product.ShortDescription,
		"long_description":  product.LongDescription,
		"status":            product.Status,
		"is_approved":       product.IsApproved,
	}
	if err := s.products.UpdateProductByCode(existing.Code, updates); err != nil {
		return false, err
	}
	return false, nil
}

// parseInt coerces a cell to an integer, defaulting to 0 on parse failure
func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// parseFloat coerces a cell to a float, defaulting to 0 on parse failure
func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTruthy coerces a cell to a boolean with an explicit allow-list:
// "true" and "1" (any casing, trimmed) are true, everything else is false.
func parseTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
