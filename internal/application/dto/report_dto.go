package dto

// DashboardResponse resumen para la pantalla principal.
type DashboardResponse struct {
	TotalProducts  int64          `json:"total_products"`
	TotalLocations int64          `json:"total_locations"`
	LowStockCount  int64          `json:"low_stock_count"`
	OutOfStock     int64          `json:"out_of_stock_count"`
	InventoryValue string         `json:"inventory_value"`
	LowStockItems  []LowStockItem `json:"low_stock_items"`
}

// LowStockItem producto por debajo de su mínimo o del umbral global.
type LowStockItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode,omitempty"`
	Quantity  int64  `json:"quantity"`
	MinStock  int64  `json:"min_stock"`
}

// SettingResponse un parámetro de configuración del sistema.
type SettingResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateSettingRequest body para PUT /api/settings/:name.
type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}
