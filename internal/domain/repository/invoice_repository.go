package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// InvoiceRepository puerto de facturas, líneas y abonos.
type InvoiceRepository interface {
	Create(inv *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(number string) (*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	ListItems(invoiceID string) ([]*entity.InvoiceItem, error)
	// UpdatePaymentState actualiza amount_paid, balance y status.
	UpdatePaymentState(inv *entity.Invoice) error
	AddPayment(p *entity.Payment) error
	ListPayments(invoiceID string) ([]*entity.Payment, error)
	CountByCustomer(customerID string) (int, error)
	CountItemsByProduct(productID string) (int, error)
	CountByTaxRate(taxRateID string) (int, error)
}
