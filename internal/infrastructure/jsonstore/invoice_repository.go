package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas, líneas y abonos sobre el documento JSON.
type InvoiceRepo struct {
	src dataSource
}

// NewInvoiceRepository construye el adaptador. Pasar el Store o una tx.
func NewInvoiceRepository(src dataSource) *InvoiceRepo {
	return &InvoiceRepo{src: src}
}

// Create persiste cabecera y líneas juntas.
func (r *InvoiceRepo) Create(inv *entity.Invoice, items []*entity.InvoiceItem) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	return r.src.mutate(func(d *database) error {
		for _, existing := range d.Invoices {
			if existing.Number == inv.Number {
				return domain.ErrDuplicate
			}
		}
		d.Invoices = append(d.Invoices, inv)
		for _, item := range items {
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.InvoiceID = inv.ID
			d.InvoiceItems = append(d.InvoiceItems, item)
		}
		return nil
	})
}

// GetByID devuelve la factura o nil.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	var found *entity.Invoice
	err := r.src.view(func(d *database) error {
		for _, inv := range d.Invoices {
			if inv.ID == id {
				found = inv
				break
			}
		}
		return nil
	})
	return found, err
}

// GetByNumber devuelve la factura por número, o nil.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	var found *entity.Invoice
	err := r.src.view(func(d *database) error {
		for _, inv := range d.Invoices {
			if inv.Number == number {
				found = inv
				break
			}
		}
		return nil
	})
	return found, err
}

// List devuelve una página de facturas, más recientes primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.src.view(func(d *database) error {
		for i := len(d.Invoices) - 1; i >= 0; i-- {
			out = append(out, d.Invoices[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(out, limit, offset), nil
}

// ListItems devuelve las líneas de una factura.
func (r *InvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	err := r.src.view(func(d *database) error {
		for _, item := range d.InvoiceItems {
			if item.InvoiceID == invoiceID {
				out = append(out, item)
			}
		}
		return nil
	})
	return out, err
}

// UpdatePaymentState actualiza amount_paid, balance y status.
func (r *InvoiceRepo) UpdatePaymentState(inv *entity.Invoice) error {
	return r.src.mutate(func(d *database) error {
		for _, existing := range d.Invoices {
			if existing.ID == inv.ID {
				existing.AmountPaid = inv.AmountPaid
				existing.Balance = inv.Balance
				existing.Status = inv.Status
				existing.UpdatedAt = time.Now()
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// AddPayment agrega un abono.
func (r *InvoiceRepo) AddPayment(p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return r.src.mutate(func(d *database) error {
		d.Payments = append(d.Payments, p)
		return nil
	})
}

// ListPayments devuelve los abonos de una factura.
func (r *InvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.src.view(func(d *database) error {
		for _, p := range d.Payments {
			if p.InvoiceID == invoiceID {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

// CountByCustomer cuenta facturas de un cliente (guard para borrarlo).
func (r *InvoiceRepo) CountByCustomer(customerID string) (int, error) {
	n := 0
	err := r.src.view(func(d *database) error {
		for _, inv := range d.Invoices {
			if inv.CustomerID == customerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountItemsByProduct cuenta líneas que referencian un producto.
func (r *InvoiceRepo) CountItemsByProduct(productID string) (int, error) {
	n := 0
	err := r.src.view(func(d *database) error {
		for _, item := range d.InvoiceItems {
			if item.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountByTaxRate cuenta facturas que usan una tasa (guard para borrarla).
func (r *InvoiceRepo) CountByTaxRate(taxRateID string) (int, error) {
	n := 0
	err := r.src.view(func(d *database) error {
		for _, inv := range d.Invoices {
			if inv.TaxRateID == taxRateID {
				n++
			}
		}
		return nil
	})
	return n, err
}
