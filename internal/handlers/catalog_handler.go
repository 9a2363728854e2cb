package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// CatalogHandler serves the reference-data endpoints: categories, their
// sub- and child-categories, and brands.
type CatalogHandler struct {
	repo *repository.CatalogRepository
}

func NewCatalogHandler(repo *repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		repo: repo,
	}
}

// GetCategories lists all categories with their sub-categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    categories,
	})
}

// CreateCategory creates a new category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	category := &models.Category{
		Name:   req.Name,
		Icon:   req.Icon,
		Status: true,
	}
	if req.Status != nil {
		category.Status = *req.Status
	}

	if err := h.repo.CreateCategory(category); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    category,
	})
}

// DeleteCategory soft deletes a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Category ID must be numeric",
			},
		})
		return
	}

	if err := h.repo.DeleteCategory(uint(categoryID)); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete category",
			},
		})
		return
	}

	message := "Category deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: &message,
	})
}

// GetSubCategories lists sub-categories of a category
func (h *CatalogHandler) GetSubCategories(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Category ID must be numeric",
			},
		})
		return
	}

	subCategories, err := h.repo.GetSubCategories(uint(categoryID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list sub-categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    subCategories,
	})
}

// CreateSubCategory creates a sub-category under an existing category
func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req models.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	subCategory := &models.SubCategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Status:     true,
	}
	if req.Status != nil {
		subCategory.Status = *req.Status
	}

	if err := h.repo.CreateSubCategory(subCategory); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "PARENT_NOT_FOUND",
					Message: "Parent category does not exist",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create sub-category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    subCategory,
	})
}

// GetChildCategories lists child-categories of a sub-category
func (h *CatalogHandler) GetChildCategories(c *gin.Context) {
	subCategoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Sub-category ID must be numeric",
			},
		})
		return
	}

	childCategories, err := h.repo.GetChildCategories(uint(subCategoryID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list child-categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    childCategories,
	})
}

// CreateChildCategory creates a child-category under an existing sub-category
func (h *CatalogHandler) CreateChildCategory(c *gin.Context) {
	var req models.CreateChildCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	childCategory := &models.ChildCategory{
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Name:          req.Name,
		Status:        true,
	}
	if req.Status != nil {
		childCategory.Status = *req.Status
	}

	if err := h.repo.CreateChildCategory(childCategory); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "PARENT_NOT_FOUND",
					Message: "Parent sub-category does not exist",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create child-category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    childCategory,
	})
}

// GetBrands lists all brands
func (h *CatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.repo.GetBrands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list brands",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    brands,
	})
}

// CreateBrand creates a new brand
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req models.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	brand := &models.Brand{
		Name:   req.Name,
		Logo:   req.Logo,
		Status: true,
	}
	if req.Status != nil {
		brand.Status = *req.Status
	}

	if err := h.repo.CreateBrand(brand); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create brand",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    brand,
	})
}
