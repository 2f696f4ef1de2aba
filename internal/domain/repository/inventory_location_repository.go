package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// InventoryLocationRepository puerto del desglose de stock por ubicación.
// Upsert garantiza a lo sumo una fila por par (product_id, location_id).
type InventoryLocationRepository interface {
	// Get devuelve la fila del par, o nil si no existe.
	Get(productID, locationID string) (*entity.InventoryLocation, error)
	// GetForUpdate es Get con bloqueo de fila dentro de una transacción.
	GetForUpdate(productID, locationID string) (*entity.InventoryLocation, error)
	// List filtra por producto y/o ubicación; con ambos vacíos devuelve todo.
	List(productID, locationID string) ([]*entity.InventoryLocation, error)
	ListByProduct(productID string) ([]*entity.InventoryLocation, error)
	Upsert(row *entity.InventoryLocation) error
	CountByLocation(locationID string) (int, error)
	CountByProduct(productID string) (int, error)
}
