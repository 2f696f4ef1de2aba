package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura según el saldo pagado.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Invoice cabecera de factura de venta. La creación descuenta stock vía
// Ledger.Deduct en la misma transacción.
type Invoice struct {
	ID           string          `json:"id"`
	Number       string          `json:"invoice_number"` // <prefijo>-YYYYMMDD-XXXXXXXX
	CustomerID   string          `json:"customer_id"`
	Date         time.Time       `json:"date"`
	DueDate      time.Time       `json:"due_date"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	TaxRateID    string          `json:"tax_rate_id,omitempty"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total_amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Balance      decimal.Decimal `json:"balance"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InvoiceItem línea de factura. ProductName se copia al momento de facturar
// para que la factura no cambie si el producto se renombra.
type InvoiceItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Payment abono a una factura.
type Payment struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
