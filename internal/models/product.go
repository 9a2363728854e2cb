package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product represents a catalog product. Products imported from spreadsheets are
// keyed by the externally supplied integer Code; products created through the API
// get a generated code.
type Product struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code             int             `json:"code" gorm:"not null;uniqueIndex:idx_products_code"`
	Name             string          `json:"name" gorm:"not null"`
	Slug             *string         `json:"slug,omitempty" gorm:"uniqueIndex:idx_products_slug"`
	SKU              string          `json:"sku" gorm:"index"`
	CategoryID       uint            `json:"categoryId" gorm:"not null;index"`
	SubCategoryID    *uint           `json:"subCategoryId,omitempty" gorm:"index"`
	ChildCategoryID  *uint           `json:"childCategoryId,omitempty" gorm:"index"`
	BrandID          uint            `json:"brandId" gorm:"not null;index"`
	VendorID         uint            `json:"vendorId" gorm:"not null;index"`
	Qty              int             `json:"qty" gorm:"not null;default:0"`
	Price            float64         `json:"price" gorm:"not null"`
	ThumbImage       string          `json:"thumbImage"`
	Images           pq.StringArray  `json:"images,omitempty" gorm:"type:text[]"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Status           bool            `json:"status" gorm:"not null;default:false;index"`
	IsApproved       bool            `json:"isApproved" gorm:"not null;default:false"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	DeletedAt        *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code             int      `json:"code" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Slug             *string  `json:"slug,omitempty"`
	SKU              string   `json:"sku"`
	CategoryID       uint     `json:"categoryId" binding:"required"`
	SubCategoryID    *uint    `json:"subCategoryId,omitempty"`
	ChildCategoryID  *uint    `json:"childCategoryId,omitempty"`
	BrandID          uint     `json:"brandId" binding:"required"`
	VendorID         uint     `json:"vendorId" binding:"required"`
	Qty              int      `json:"qty"`
	Price            float64  `json:"price" binding:"required"`
	ThumbImage       string   `json:"thumbImage"`
	Images           []string `json:"images,omitempty"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Status           bool     `json:"status"`
	IsApproved       bool     `json:"isApproved"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name             *string  `json:"name,omitempty"`
	SKU              *string  `json:"sku,omitempty"`
	CategoryID       *uint    `json:"categoryId,omitempty"`
	SubCategoryID    *uint    `json:"subCategoryId,omitempty"`
	ChildCategoryID  *uint    `json:"childCategoryId,omitempty"`
	BrandID          *uint    `json:"brandId,omitempty"`
	VendorID         *uint    `json:"vendorId,omitempty"`
	Qty              *int     `json:"qty,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	ThumbImage       *string  `json:"thumbImage,omitempty"`
	Images           []string `json:"images,omitempty"`
	ShortDescription *string  `json:"shortDescription,omitempty"`
	LongDescription  *string  `json:"longDescription,omitempty"`
	Status           *bool    `json:"status,omitempty"`
	IsApproved       *bool    `json:"isApproved,omitempty"`
}

// ListProductsRequest represents pagination and filters for product listing
type ListProductsRequest struct {
	Page       int     `form:"page"`
	Limit      int     `form:"limit"`
	CategoryID *uint   `form:"categoryId"`
	BrandID    *uint   `form:"brandId"`
	Status     *bool   `form:"status"`
	Search     *string `form:"search"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
