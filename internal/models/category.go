package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a top-level catalog category.
type Category struct {
	ID        uint            `json:"id" gorm:"primary_key"`
	Name      string          `json:"name" gorm:"not null;uniqueIndex:idx_categories_name"`
	Slug      string          `json:"slug" gorm:"not null;uniqueIndex:idx_categories_slug"`
	Icon      *string         `json:"icon,omitempty"`
	Status    bool            `json:"status" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`

	SubCategories []SubCategory `json:"subCategories,omitempty" gorm:"foreignKey:CategoryID"`
}

// SubCategory is a second-level category scoped by its parent category.
type SubCategory struct {
	ID         uint            `json:"id" gorm:"primary_key"`
	CategoryID uint            `json:"categoryId" gorm:"not null;index;uniqueIndex:idx_sub_categories_name"`
	Name       string          `json:"name" gorm:"not null;uniqueIndex:idx_sub_categories_name"`
	Slug       string          `json:"slug" gorm:"not null;index"`
	Status     bool            `json:"status" gorm:"not null;default:true"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	DeletedAt  *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`

	ChildCategories []ChildCategory `json:"childCategories,omitempty" gorm:"foreignKey:SubCategoryID"`
}

// ChildCategory is a third-level category scoped by its parent sub-category.
type ChildCategory struct {
	ID            uint            `json:"id" gorm:"primary_key"`
	CategoryID    uint            `json:"categoryId" gorm:"not null;index"`
	SubCategoryID uint            `json:"subCategoryId" gorm:"not null;index;uniqueIndex:idx_child_categories_name"`
	Name          string          `json:"name" gorm:"not null;uniqueIndex:idx_child_categories_name"`
	Slug          string          `json:"slug" gorm:"not null;index"`
	Status        bool            `json:"status" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Brand represents a product brand.
type Brand struct {
	ID        uint            `json:"id" gorm:"primary_key"`
	Name      string          `json:"name" gorm:"not null;uniqueIndex:idx_brands_name"`
	Slug      string          `json:"slug" gorm:"not null;uniqueIndex:idx_brands_slug"`
	Logo      *string         `json:"logo,omitempty"`
	Status    bool            `json:"status" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// Vendor represents a marketplace vendor storefront.
type Vendor struct {
	ID        uint            `json:"id" gorm:"primary_key"`
	Name      string          `json:"name" gorm:"not null;index"`
	Email     string          `json:"email" gorm:"index"`
	Phone     *string         `json:"phone,omitempty"`
	Address   *string         `json:"address,omitempty"`
	Status    bool            `json:"status" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	Icon   *string `json:"icon,omitempty"`
	Status *bool   `json:"status,omitempty"`
}

// CreateSubCategoryRequest represents a request to create a sub-category
type CreateSubCategoryRequest struct {
	CategoryID uint   `json:"categoryId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Status     *bool  `json:"status,omitempty"`
}

// CreateChildCategoryRequest represents a request to create a child-category
type CreateChildCategoryRequest struct {
	CategoryID    uint   `json:"categoryId" binding:"required"`
	SubCategoryID uint   `json:"subCategoryId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Status        *bool  `json:"status,omitempty"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name   string  `json:"name" binding:"required"`
	Logo   *string `json:"logo,omitempty"`
	Status *bool   `json:"status,omitempty"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the SubCategory model
func (SubCategory) TableName() string {
	return "sub_categories"
}

// TableName returns the table name for the ChildCategory model
func (ChildCategory) TableName() string {
	return "child_categories"
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
