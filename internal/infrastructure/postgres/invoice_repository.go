package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, customer_id, date, due_date, payment_terms, status,
	subtotal, discount, tax_rate_id, tax_amount, shipping_cost, total_amount, amount_paid,
	balance, notes, created_by, created_at, updated_at`

// InvoiceRepo facturas, líneas y abonos sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas juntas. Si el Querier es una transacción,
// todo cae con el rollback.
func (r *InvoiceRepo) Create(inv *entity.Invoice, items []*entity.InvoiceItem) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.CustomerID, inv.Date, inv.DueDate, inv.PaymentTerms, inv.Status,
		inv.Subtotal, inv.Discount, inv.TaxRateID, inv.TaxAmount, inv.ShippingCost, inv.Total,
		inv.AmountPaid, inv.Balance, inv.Notes, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO invoice_items (id, invoice_id, product_id, product_name, quantity, unit_price, discount, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.InvoiceID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Discount, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.get(`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetByNumber obtiene una factura por su consecutivo.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	return r.get(`SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1`, number)
}

func (r *InvoiceRepo) get(query, arg string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, arg).Scan(invoiceScanDest(&inv)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List lista facturas con paginación, más reciente primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(invoiceScanDest(&inv)...); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// ListItems devuelve las líneas de una factura.
func (r *InvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, product_name, quantity, unit_price, discount, total_price
		FROM invoice_items WHERE invoice_id = $1`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Discount, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdatePaymentState actualiza amount_paid, balance y status.
func (r *InvoiceRepo) UpdatePaymentState(inv *entity.Invoice) error {
	query := `UPDATE invoices SET amount_paid = $2, balance = $3, status = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.AmountPaid, inv.Balance, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice payment state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPayment registra un abono.
func (r *InvoiceRepo) AddPayment(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, method, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.InvoiceID, p.Amount, p.Method, p.Reference, p.Notes, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments devuelve los abonos de una factura, más antiguo primero.
func (r *InvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, reference, notes, created_by, created_at
		FROM payments WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByCustomer cuenta facturas de un cliente (guarda de borrado).
func (r *InvoiceRepo) CountByCustomer(customerID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE customer_id = $1`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// CountItemsByProduct cuenta líneas de factura que referencian un producto.
func (r *InvoiceRepo) CountItemsByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoice_items WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoice items: %w", err)
	}
	return n, nil
}

// CountByTaxRate cuenta facturas que usan una tasa de impuesto.
func (r *InvoiceRepo) CountByTaxRate(taxRateID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE tax_rate_id = $1`, taxRateID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices by tax rate: %w", err)
	}
	return n, nil
}

func invoiceScanDest(inv *entity.Invoice) []any {
	return []any{
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.Date, &inv.DueDate, &inv.PaymentTerms,
		&inv.Status, &inv.Subtotal, &inv.Discount, nullString(&inv.TaxRateID), &inv.TaxAmount,
		&inv.ShippingCost, &inv.Total, &inv.AmountPaid, &inv.Balance, &inv.Notes,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	}
}
