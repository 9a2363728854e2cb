package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// MockCatalogRepository is a mock implementation of CatalogRepositoryInterface
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) GetAllCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogRepository) GetAllBrands() ([]models.Brand, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Brand), args.Error(1)
}

func (m *MockCatalogRepository) GetSubCategoryByName(name string, categoryID uint) (*models.SubCategory, error) {
	args := m.Called(name, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubCategory), args.Error(1)
}

func (m *MockCatalogRepository) GetChildCategoryByName(name string, subCategoryID uint) (*models.ChildCategory, error) {
	args := m.Called(name, subCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChildCategory), args.Error(1)
}

// MockProductsRepository is a mock implementation of ProductsRepositoryInterface
type MockProductsRepository struct {
	mock.Mock
}

var _ repository.ProductsRepositoryInterface = (*MockProductsRepository)(nil)

func (m *MockProductsRepository) CreateProduct(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductsRepository) GetProductByID(productID uuid.UUID) (*models.Product, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsRepository) GetProductBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsRepository) GetProductByCode(code int) (*models.Product, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsRepository) UpdateProductByCode(code int, updates map[string]interface{}) error {
	args := m.Called(code, updates)
	return args.Error(0)
}

func (m *MockProductsRepository) UpdateProduct(productID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(productID, updates)
	return args.Error(0)
}

func (m *MockProductsRepository) DeleteProduct(productID uuid.UUID) error {
	args := m.Called(productID)
	return args.Error(0)
}

func (m *MockProductsRepository) GetProducts(req *models.ListProductsRequest) ([]models.Product, int64, error) {
	args := m.Called(req)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductsRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func testReferenceData() ([]models.Category, []models.Brand) {
	categories := []models.Category{
		{ID: 5, Name: "Electronics"},
		{ID: 9, Name: "Fashion"},
	}
	brands := []models.Brand{
		{ID: 1, Name: "Generic"},
		{ID: 3, Name: "Acme"},
	}
	return categories, brands
}

func validRow() map[string]string {
	return map[string]string{
		"name":         "Wireless Mouse",
		"category":     "Electronics",
		"sub_category": "Accessories",
		"code":         "10001",
		"sku":          "WM-001",
		"qty":          "25",
		"price":        "29.99",
		"status":       "true",
		"is_approved":  "1",
	}
}

func newTestService(catalog *MockCatalogRepository, products *MockProductsRepository) *ImportService {
	return NewImportService(catalog, products, nil)
}

// ===========================================
// Validation Tests
// ===========================================

func TestRun_MissingNameAndCategory(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{
		{"code": "10001", "price": "9.99"},
	})

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.FailedCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Errors, "Product name is required")
	assert.Contains(t, result.Errors[0].Errors, "Category is required")
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
	mockProducts.AssertNotCalled(t, "UpdateProductByCode", mock.Anything, mock.Anything)
}

func TestRun_WhitespaceOnlyNameIsMissing(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)

	service := newTestService(mockCatalog, mockProducts)

	row := validRow()
	row["name"] = "   "
	result := service.Run([]map[string]string{row})

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Errors, "Product name is required")
}

// ===========================================
// Resolution Tests
// ===========================================

func TestRun_UnknownCategory(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)

	service := newTestService(mockCatalog, mockProducts)

	row := validRow()
	row["category"] = "Gadgets"
	result := service.Run([]map[string]string{row})

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, []string{"Category 'Gadgets' not found"}, result.Errors[0].Errors)
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRun_CategoryMatchIsCaseInsensitive(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", 10001).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	row := validRow()
	row["category"] = "  ELECTRONICS  "
	result := service.Run([]map[string]string{row})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.CreatedCount)
	mockCatalog.AssertExpectations(t)
	mockProducts.AssertExpectations(t)
}

func TestRun_SubCategoryNotFound(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Phones", uint(5)).
		Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockCatalog, mockProducts)

	row := validRow()
	row["sub_category"] = "Phones"
	result := service.Run([]map[string]string{row})

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, []string{"Sub-category 'Phones' not found in 'Electronics'"}, result.Errors[0].Errors)
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRun_ChildCategoryNotFound(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockCatalog.On("GetChildCategoryByName", "Mice", uint(7)).
		Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockCatalog, mockProducts)

	row := validRow()
	row["child_category"] = "Mice"
	result := service.Run([]map[string]string{row})

	assert.False(t, result.Success)
	assert.Equal(t, []string{"Child-category 'Mice' not found"}, result.Errors[0].Errors)
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRun_ChildCategoryOptional(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", 10001).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{validRow()})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.CreatedCount)
	mockCatalog.AssertNotCalled(t, "GetChildCategoryByName", mock.Anything, mock.Anything)
}

// ===========================================
// Upsert Tests
// ===========================================

func TestRun_CreatesNewProductWithPlaceholders(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", 10001).Return(nil, gorm.ErrRecordNotFound)

	var created *models.Product
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Product)
		}).
		Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{validRow()})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 0, result.UpdatedCount)

	if assert.NotNil(t, created) {
		assert.Equal(t, 10001, created.Code)
		assert.Equal(t, "Wireless Mouse", created.Name)
		assert.Equal(t, uint(5), created.CategoryID)
		if assert.NotNil(t, created.SubCategoryID) {
			assert.Equal(t, uint(7), *created.SubCategoryID)
		}
		assert.Equal(t, uint(1), created.BrandID)
		assert.Equal(t, uint(1), created.VendorID)
		assert.Equal(t, 25, created.Qty)
		assert.Equal(t, 29.99, created.Price)
		assert.True(t, created.Status)
		assert.True(t, created.IsApproved)
	}
}

func TestRun_UpdatesExistingProductByCode(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)

	slug := "wireless-mouse"
	existing := &models.Product{ID: uuid.New(), Code: 10001, Name: "Old Name", Slug: &slug}
	mockProducts.On("GetProductByCode", 10001).Return(existing, nil)

	var updates map[string]interface{}
	mockProducts.On("UpdateProductByCode", 10001, mock.Anything).
		Run(func(args mock.Arguments) {
			updates = args.Get(1).(map[string]interface{})
		}).
		Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{validRow()})

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 1, result.UpdatedCount)
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)

	if assert.NotNil(t, updates) {
		assert.Equal(t, "Wireless Mouse", updates["name"])
		assert.NotContains(t, updates, "slug")
		assert.NotContains(t, updates, "code")
	}
}

func TestRun_ReimportIsIdempotent(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)

	existing := &models.Product{ID: uuid.New(), Code: 10001, Name: "Wireless Mouse"}
	mockProducts.On("GetProductByCode", 10001).Return(existing, nil)
	mockProducts.On("UpdateProductByCode", 10001, mock.Anything).Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	first := service.Run([]map[string]string{validRow()})
	second := service.Run([]map[string]string{validRow()})

	assert.True(t, first.Success)
	assert.True(t, second.Success)
	assert.Equal(t, 1, first.UpdatedCount)
	assert.Equal(t, 1, second.UpdatedCount)
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

// ===========================================
// Batch Behavior Tests
// ===========================================

func TestRun_RowNumberingSkipsHeader(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	good := validRow()
	bad := validRow()
	bad["name"] = ""

	// Second data row (index 1) must be reported as file line 3
	result := service.Run([]map[string]string{good, bad})

	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
}

func TestRun_PartialBatchKeepsGoodRows(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).Return(nil)

	service := newTestService(mockCatalog, mockProducts)

	noName := validRow()
	noName["name"] = ""
	badCategory := validRow()
	badCategory["category"] = "Nope"

	result := service.Run([]map[string]string{noName, validRow(), badCategory})

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Len(t, result.Errors, 2)
	mockProducts.AssertNumberOfCalls(t, "CreateProduct", 1)
}

func TestRun_PersistenceErrorBecomesRowError(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)
	mockCatalog.On("GetSubCategoryByName", "Accessories", uint(5)).
		Return(&models.SubCategory{ID: 7, CategoryID: 5, Name: "Accessories"}, nil)
	mockProducts.On("GetProductByCode", 10001).Return(nil, gorm.ErrRecordNotFound)
	mockProducts.On("CreateProduct", mock.AnythingOfType("*models.Product")).
		Return(errors.New("connection reset"))

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{validRow()})

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Errors[0], "Failed to save product")
}

func TestRun_ReferenceLoadFailure(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	mockCatalog.On("GetAllCategories").Return(nil, errors.New("db down"))

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run([]map[string]string{validRow(), validRow()})

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.FailedCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Errors[0], "failed to load categories")
	mockProducts.AssertNotCalled(t, "CreateProduct", mock.Anything)
}

func TestRun_EmptyBatchSucceeds(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)

	service := newTestService(mockCatalog, mockProducts)

	result := service.Run(nil)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.TotalRows)
	assert.Empty(t, result.Errors)
}

// ===========================================
// Coercion Tests
// ===========================================

func TestParseTruthy(t *testing.T) {
	assert.True(t, parseTruthy("true"))
	assert.True(t, parseTruthy("TRUE"))
	assert.True(t, parseTruthy(" True "))
	assert.True(t, parseTruthy("1"))
	assert.False(t, parseTruthy("yes"))
	assert.False(t, parseTruthy("0"))
	assert.False(t, parseTruthy("false"))
	assert.False(t, parseTruthy(""))
}

func TestParseIntDefaultsToZero(t *testing.T) {
	assert.Equal(t, 42, parseInt("42"))
	assert.Equal(t, 42, parseInt(" 42 "))
	assert.Equal(t, 0, parseInt("abc"))
	assert.Equal(t, 0, parseInt(""))
}

func TestParseFloatDefaultsToZero(t *testing.T) {
	assert.Equal(t, 29.99, parseFloat("29.99"))
	assert.Equal(t, 0.0, parseFloat("n/a"))
	assert.Equal(t, 0.0, parseFloat(""))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "electronics", NormalizeName("  Electronics  "))
	assert.Equal(t, "men's clothing", NormalizeName("Men's Clothing"))
}

func TestBuildReferenceIndex(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockProducts := new(MockProductsRepository)

	categories, brands := testReferenceData()
	mockCatalog.On("GetAllCategories").Return(categories, nil)
	mockCatalog.On("GetAllBrands").Return(brands, nil)

	service := newTestService(mockCatalog, mockProducts)

	index, err := service.BuildReferenceIndex()

	assert.NoError(t, err)
	assert.Equal(t, uint(5), index.Categories["electronics"])
	assert.Equal(t, uint(9), index.Categories["fashion"])
	assert.Equal(t, uint(3), index.Brands["acme"])
}
