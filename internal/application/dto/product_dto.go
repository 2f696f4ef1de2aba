package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	MinStock      int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock      int64           `json:"max_stock" validate:"omitempty,min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. La cantidad no se
// acepta aquí: el stock sólo se mueve por las operaciones del Ledger.
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	MinStock      int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock      int64           `json:"max_stock" validate:"omitempty,min=0"`
}

// ProductResponse producto para la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      int64           `json:"quantity"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      int64           `json:"max_stock"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
