package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type ProductsHandler struct {
	repo repository.ProductsRepositoryInterface
}

func NewProductsHandler(repo repository.ProductsRepositoryInterface) *ProductsHandler {
	return &ProductsHandler{
		repo: repo,
	}
}

// CreateProduct creates a new product
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
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

	product := &models.Product{
		Code:             req.Code,
		Name:             req.Name,
		Slug:             req.Slug,
		SKU:              req.SKU,
		CategoryID:       req.CategoryID,
		SubCategoryID:    req.SubCategoryID,
		ChildCategoryID:  req.ChildCategoryID,
		BrandID:          req.BrandID,
		VendorID:         req.VendorID,
		Qty:              req.Qty,
		Price:            req.Price,
		ThumbImage:       req.ThumbImage,
		Images:           pq.StringArray(req.Images),
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Status:           req.Status,
		IsApproved:       req.IsApproved,
	}

	if err := h.repo.CreateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "CREATE_FAILED",
				Message: "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    product,
	})
}

// GetProducts lists products with filters and pagination
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	var req models.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	products, total, err := h.repo.GetProducts(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: "Failed to list products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     products,
		"total":    total,
		"page":     req.Page,
		"pageSize": req.Limit,
	})
}

// GetProduct retrieves a single product by ID
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "GET_FAILED",
				Message: "Failed to get product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
	})
}

// GetProductBySlug retrieves a single product by its slug
func (h *ProductsHandler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.repo.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "GET_FAILED",
				Message: "Failed to get product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
	})
}

// UpdateProduct updates the fields present in the request body
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
			},
		})
		return
	}

	var req models.UpdateProductRequest
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

	updates := buildProductUpdates(&req)
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "No fields to update",
			},
		})
		return
	}

	if err := h.repo.UpdateProduct(productID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to update product",
			},
		})
		return
	}

	product, err := h.repo.GetProductByID(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "GET_FAILED",
				Message: "Failed to load updated product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
	})
}

// DeleteProduct soft deletes a product
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
			},
		})
		return
	}

	if err := h.repo.DeleteProduct(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "DELETE_FAILED",
				Message: "Failed to delete product",
			},
		})
		return
	}

	message := "Product deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: &message,
	})
}

// ApproveProduct marks a product as approved for the storefront
func (h *ProductsHandler) ApproveProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Product ID must be a valid UUID",
			},
		})
		return
	}

	if err := h.repo.UpdateProduct(productID, map[string]interface{}{"is_approved": true}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "NOT_FOUND",
					Message: "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPDATE_FAILED",
				Message: "Failed to approve product",
			},
		})
		return
	}

	message := "Product approved"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: &message,
	})
}

// buildProductUpdates maps set request fields to their columns
func buildProductUpdates(req *models.UpdateProductRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.SubCategoryID != nil {
		updates["sub_category_id"] = *req.SubCategoryID
	}
	if req.ChildCategoryID != nil {
		updates["child_category_id"] = *req.ChildCategoryID
	}
	if req.BrandID != nil {
		updates["brand_id"] = *req.BrandID
	}
	if req.VendorID != nil {
		updates["vendor_id"] = *req.VendorID
	}
	if req.Qty != nil {
		updates["qty"] = *req.Qty
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ThumbImage != nil {
		updates["thumb_image"] = *req.ThumbImage
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.LongDescription != nil {
		updates["long_description"] = *req.LongDescription
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsApproved != nil {
		updates["is_approved"] = *req.IsApproved
	}

	return updates
}
