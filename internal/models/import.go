package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// ImportRowError collects every error recorded for one spreadsheet row.
// Row is the 1-based line number in the uploaded file (header line included,
// so the first data row is row 2).
type ImportRowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportResult represents the outcome of one import run. Success is true
// only when no row produced an error; rows written before a failing row
// stay committed either way.
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	CreatedCount int              `json:"createdCount"`
	UpdatedCount int              `json:"updatedCount"`
	FailedCount  int              `json:"failedCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
}

// ProductImportColumns returns the column definitions for product import
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "name", Description: "Product name", Required: true, Type: "string", Example: "Blue Cotton T-Shirt"},
		{Name: "category", Description: "Category name - must exist", Required: true, Type: "string", Example: "Fashion"},
		{Name: "sub_category", Description: "Sub-category name within the category - must exist", Required: true, Type: "string", Example: "Men's Clothing"},
		{Name: "child_category", Description: "Child-category name within the sub-category (optional)", Required: false, Type: "string", Example: "T-Shirts"},
		{Name: "brand", Description: "Brand name", Required: false, Type: "string", Example: "Acme"},
		{Name: "code", Description: "Unique numeric product code used for upserts", Required: true, Type: "number", Example: "10001"},
		{Name: "sku", Description: "Product SKU", Required: false, Type: "string", Example: "TSH-BLU-001"},
		{Name: "qty", Description: "Stock quantity", Required: false, Type: "number", Example: "25"},
		{Name: "price", Description: "Product price", Required: false, Type: "number", Example: "29.99"},
		{Name: "thumb_image", Description: "Thumbnail image URL", Required: false, Type: "string", Example: "https://cdn.example.com/tshirt.jpg"},
		{Name: "short_description", Description: "Short product description", Required: false, Type: "string", Example: ""},
		{Name: "long_description", Description: "Long product description", Required: false, Type: "string", Example: ""},
		{Name: "status", Description: "Published flag (true/1)", Required: false, Type: "boolean", Example: "true"},
		{Name: "is_approved", Description: "Approval flag (true/1)", Required: false, Type: "boolean", Example: "1"},
	}
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1.0",
		Columns: ProductImportColumns(),
	}
}
