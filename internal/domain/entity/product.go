package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es el agregado de stock en todo el sistema; el desglose por
// ubicación vive en InventoryLocation y sólo el Ledger escribe ambos.
// LocationID es el puntero legado a una única ubicación (anterior al
// multi-ubicación); se usa como ubicación por defecto del desglose.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"` // único si está presente
	CategoryID    string          `json:"category_id,omitempty"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	BrandID       string          `json:"brand_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	LocationID    string          `json:"location_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      int64           `json:"quantity"`  // invariante: >= 0
	MinStock      int64           `json:"min_stock"` // umbral informativo
	MaxStock      int64           `json:"max_stock"` // informativo, nunca se rechaza por exceso
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
