package entity

import "time"

// InventoryLocation es el stock de un producto en una ubicación concreta.
// A lo sumo existe una fila por par (ProductID, LocationID); el Ledger
// hace merge-or-create al escribir, nunca duplica el par.
type InventoryLocation struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"` // invariante: >= 0
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
