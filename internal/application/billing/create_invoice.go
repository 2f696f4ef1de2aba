package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CreateInvoiceUseCase crea facturas y descuenta el inventario en una sola
// transacción, y registra abonos actualizando el estado de pago.
type CreateInvoiceUseCase struct {
	txRunner  BillingTxRunner
	ledger    *ledger.Service
	customers repository.CustomerRepository
	products  repository.ProductRepository
	taxRates  repository.TaxRateRepository
	invoices  repository.InvoiceRepository
	settings  repository.SettingsRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	ledgerSvc *ledger.Service,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	taxRates repository.TaxRateRepository,
	invoices repository.InvoiceRepository,
	settings repository.SettingsRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:  txRunner,
		ledger:    ledgerSvc,
		customers: customers,
		products:  products,
		taxRates:  taxRates,
		invoices:  invoices,
		settings:  settings,
	}
}

// CreateInvoice crea la factura y descuenta stock por cada línea dentro de la
// misma transacción. El descuento no bloquea por stock insuficiente: el
// agregado se recorta a cero y la diferencia queda registrada en la bitácora.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, actorID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Tasa de impuesto de la factura (opcional).
	rate := decimal.Zero
	if in.TaxRateID != "" {
		tr, err := uc.taxRates.GetByID(in.TaxRateID)
		if err != nil {
			return nil, err
		}
		if tr == nil {
			return nil, domain.ErrInvalidInput
		}
		rate = tr.Rate
	}
	if in.ShippingCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validación de productos y precios fuera de la transacción (sólo lectura).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String()

	// Totales en decimal: nunca float para dinero.
	var subtotal, discountTotal decimal.Decimal
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		lineGross := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		lineTotal := lineGross.Sub(item.Discount)
		if lineTotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(lineGross)
		discountTotal = discountTotal.Add(item.Discount)
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalPrice:  lineTotal,
		})
	}
	taxable := subtotal.Sub(discountTotal)
	taxAmount := taxable.Mul(rate).Div(hundred).Round(2)
	total := taxable.Add(taxAmount).Add(in.ShippingCost)

	dueDate := now.AddDate(0, 0, 30)
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}

	inv := &entity.Invoice{
		ID:           invoiceID,
		Number:       uc.nextNumber(now),
		CustomerID:   in.CustomerID,
		Date:         now,
		DueDate:      dueDate,
		PaymentTerms: in.PaymentTerms,
		Status:       entity.InvoiceStatusPending,
		Subtotal:     subtotal,
		Discount:     discountTotal,
		TaxRateID:    in.TaxRateID,
		TaxAmount:    taxAmount,
		ShippingCost: in.ShippingCost,
		Total:        total,
		AmountPaid:   decimal.Zero,
		Balance:      total,
		Notes:        in.Notes,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
		invoices repository.InvoiceRepository,
	) error {
		// Un descuento por línea, dentro de la misma transacción que la
		// factura: si algo falla, nada queda escrito.
		for _, item := range items {
			if _, err := uc.ledger.DeductInTx(products, levels, audit, actorID, ledger.DeductInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				InvoiceID: invoiceID,
			}, now); err != nil {
				return err
			}
		}
		return invoices.Create(inv, items)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// RecordPayment registra un abono y actualiza estado, pagado y saldo. El
// estado pasa a partial con el primer abono y a paid cuando el saldo llega a
// cero; un abono mayor que el saldo se rechaza.
func (uc *CreateInvoiceUseCase) RecordPayment(ctx context.Context, actorID, invoiceID string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		_ repository.InventoryLocationRepository,
		_ repository.AuditLogRepository,
		invoices repository.InvoiceRepository,
	) error {
		var err error
		inv, err = invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusPaid {
			return domain.ErrConflict
		}
		if in.Amount.GreaterThan(inv.Balance) {
			return domain.ErrConflict
		}
		now := time.Now()
		if err := invoices.AddPayment(&entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
			Notes:     in.Notes,
			CreatedBy: actorID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		inv.AmountPaid = inv.AmountPaid.Add(in.Amount)
		inv.Balance = inv.Total.Sub(inv.AmountPaid)
		if inv.Balance.IsZero() {
			inv.Status = entity.InvoiceStatusPaid
		} else {
			inv.Status = entity.InvoiceStatusPartial
		}
		inv.UpdatedAt = now
		return invoices.UpdatePaymentState(inv)
	})
	if err != nil {
		return nil, err
	}
	items, err := uc.invoices.ListItems(invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// GetInvoice obtiene una factura con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoices.ListItems(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListInvoices lista facturas con paginación, sin líneas.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]dto.InvoiceResponse, error) {
	list, err := uc.invoices.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return items, nil
}

// ListPayments lista los abonos de una factura.
func (uc *CreateInvoiceUseCase) ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	inv, err := uc.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.invoices.ListPayments(invoiceID)
}

// nextNumber arma el consecutivo <prefijo>-YYYYMMDD-XXXXXXXX. El sufijo
// aleatorio evita coordinar un contador; el repositorio rechaza duplicados
// por si acaso.
func (uc *CreateInvoiceUseCase) nextNumber(now time.Time) string {
	prefix := uc.settings.GetValue(entity.SettingInvoicePrefix, "INV")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		Date:         inv.Date,
		DueDate:      inv.DueDate,
		PaymentTerms: inv.PaymentTerms,
		Status:       inv.Status,
		Subtotal:     inv.Subtotal,
		Discount:     inv.Discount,
		TaxAmount:    inv.TaxAmount,
		ShippingCost: inv.ShippingCost,
		Total:        inv.Total,
		AmountPaid:   inv.AmountPaid,
		Balance:      inv.Balance,
		Notes:        inv.Notes,
		CreatedAt:    inv.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TotalPrice:  it.TotalPrice,
		})
	}
	return resp
}
