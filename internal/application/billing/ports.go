package billing

import (
	"context"

	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función con repositorios de inventario y
// facturación atados a la misma transacción, para que la factura y los
// descuentos de stock de sus líneas sean una sola unidad atómica.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
		invoices repository.InvoiceRepository,
	) error) error
}
