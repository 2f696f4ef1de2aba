package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura en la petición.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"` // cero = usar precio del producto
	Discount  decimal.Decimal `json:"discount"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID   string               `json:"customer_id" validate:"required"`
	Items        []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRateID    string               `json:"tax_rate_id,omitempty"`
	ShippingCost decimal.Decimal      `json:"shipping_cost"`
	DueDate      *time.Time           `json:"due_date,omitempty"`
	PaymentTerms string               `json:"payment_terms,omitempty"`
	Notes        string               `json:"notes,omitempty"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method,omitempty"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// InvoiceItemResponse línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"invoice_number"`
	CustomerID   string                `json:"customer_id"`
	Date         time.Time             `json:"date"`
	DueDate      time.Time             `json:"due_date"`
	PaymentTerms string                `json:"payment_terms,omitempty"`
	Status       string                `json:"status"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Discount     decimal.Decimal       `json:"discount"`
	TaxAmount    decimal.Decimal       `json:"tax_amount"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	Total        decimal.Decimal       `json:"total_amount"`
	AmountPaid   decimal.Decimal       `json:"amount_paid"`
	Balance      decimal.Decimal       `json:"balance"`
	Notes        string                `json:"notes,omitempty"`
	Items        []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}
