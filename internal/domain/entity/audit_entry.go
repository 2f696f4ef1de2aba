package entity

import "time"

// Acciones que el Ledger registra en la bitácora. Una entrada por mutación
// exitosa; las operaciones fallidas no escriben nada.
const (
	ActionStockReceived    = "stock_received"
	ActionStockAdjusted    = "stock_adjusted"
	ActionStockTransferred = "stock_transferred"
	ActionStockDeducted    = "stock_deducted"
)

// AuditEntry es una entrada de la bitácora append-only. Nunca se actualiza
// ni se borra después de escrita.
type AuditEntry struct {
	ID             string    `json:"id"`
	ActorID        string    `json:"actor_id"`
	Action         string    `json:"action"`
	ProductID      string    `json:"product_id,omitempty"`
	LocationID     string    `json:"location_id,omitempty"`
	FromLocationID string    `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id,omitempty"`
	InvoiceID      string    `json:"invoice_id,omitempty"`
	Delta          int64     `json:"delta,omitempty"` // negativo en salidas
	Reason         string    `json:"reason,omitempty"`
	Details        string    `json:"details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
