package ledger

import (
	"context"

	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén,
// pasando repositorios atados a esa transacción. Es la única fuente de
// atomicidad y exclusión mutua del Ledger: el chequeo de precondiciones y la
// mutación ocurren dentro de la misma sección crítica, y un error del
// callback revierte todo (incluida la entrada de bitácora).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		levels repository.InventoryLocationRepository,
		audit repository.AuditLogRepository,
	) error) error
}
