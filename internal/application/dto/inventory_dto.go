package dto

import "time"

// ReceiveStockRequest body para POST /api/inventory/receive.
type ReceiveStockRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	LocationID string `json:"location_id,omitempty"`
	SupplierID string `json:"supplier_id,omitempty"`
	BatchRef   string `json:"batch_ref,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjust.
type AdjustStockRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	Delta      int64  `json:"delta" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	LocationID string `json:"location_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// TransferStockRequest body para POST /api/inventory/transfer.
type TransferStockRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	FromLocationID string `json:"from_location_id" validate:"required"`
	ToLocationID   string `json:"to_location_id" validate:"required,nefield=FromLocationID"`
	Quantity       int64  `json:"quantity" validate:"required,gt=0"`
	Reason         string `json:"reason,omitempty"`
}

// DeductStockRequest body para POST /api/inventory/deduct.
type DeductStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	InvoiceID string `json:"invoice_id" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// StockQuantityResponse respuesta de las mutaciones sobre el agregado.
type StockQuantityResponse struct {
	ProductID   string `json:"product_id"`
	NewQuantity int64  `json:"new_quantity"`
}

// TransferResponse respuesta de un traslado.
type TransferResponse struct {
	ProductID       string `json:"product_id"`
	FromLocationID  string `json:"from_location_id"`
	ToLocationID    string `json:"to_location_id"`
	FromNewQuantity int64  `json:"from_new_quantity"`
	ToNewQuantity   int64  `json:"to_new_quantity"`
}

// InventoryLocationResponse fila del desglose por ubicación.
type InventoryLocationResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AuditEntryResponse entrada de bitácora para la API.
type AuditEntryResponse struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	Action         string    `json:"action"`
	ProductID      string    `json:"product_id,omitempty"`
	LocationID     string    `json:"location_id,omitempty"`
	FromLocationID string    `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id,omitempty"`
	InvoiceID      string    `json:"invoice_id,omitempty"`
	Delta          int64     `json:"delta"`
	Reason         string    `json:"reason,omitempty"`
	Details        string    `json:"details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
