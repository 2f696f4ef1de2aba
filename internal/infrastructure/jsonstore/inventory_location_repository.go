package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.InventoryLocationRepository = (*InventoryLocationRepo)(nil)

// InventoryLocationRepo implementación del desglose por ubicación sobre el
// documento JSON.
type InventoryLocationRepo struct {
	src dataSource
}

// NewInventoryLocationRepository construye el adaptador. Pasar el Store o una tx.
func NewInventoryLocationRepository(src dataSource) *InventoryLocationRepo {
	return &InventoryLocationRepo{src: src}
}

// Get devuelve la fila del par (producto, ubicación), o nil si no existe.
func (r *InventoryLocationRepo) Get(productID, locationID string) (*entity.InventoryLocation, error) {
	var found *entity.InventoryLocation
	err := r.src.view(func(d *database) error {
		for _, row := range d.InventoryLocations {
			if row.ProductID == productID && row.LocationID == locationID {
				found = row
				return nil
			}
		}
		return nil
	})
	return found, err
}

// GetForUpdate equivale a Get: la transacción JSON ya es exclusiva.
func (r *InventoryLocationRepo) GetForUpdate(productID, locationID string) (*entity.InventoryLocation, error) {
	return r.Get(productID, locationID)
}

// List filtra por producto y/o ubicación; ambos vacíos devuelve todo.
func (r *InventoryLocationRepo) List(productID, locationID string) ([]*entity.InventoryLocation, error) {
	var out []*entity.InventoryLocation
	err := r.src.view(func(d *database) error {
		for _, row := range d.InventoryLocations {
			if productID != "" && row.ProductID != productID {
				continue
			}
			if locationID != "" && row.LocationID != locationID {
				continue
			}
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

// ListByProduct devuelve el desglose completo de un producto.
func (r *InventoryLocationRepo) ListByProduct(productID string) ([]*entity.InventoryLocation, error) {
	return r.List(productID, "")
}

// Upsert inserta o actualiza la fila del par (producto, ubicación).
// Nunca deja dos filas para el mismo par.
func (r *InventoryLocationRepo) Upsert(row *entity.InventoryLocation) error {
	return r.src.mutate(func(d *database) error {
		now := time.Now()
		for _, existing := range d.InventoryLocations {
			if existing.ProductID == row.ProductID && existing.LocationID == row.LocationID {
				existing.Quantity = row.Quantity
				existing.UpdatedAt = now
				return nil
			}
		}
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		row.CreatedAt = now
		row.UpdatedAt = now
		d.InventoryLocations = append(d.InventoryLocations, row)
		return nil
	})
}

// CountByLocation cuenta filas de una ubicación (guard para borrarla).
func (r *InventoryLocationRepo) CountByLocation(locationID string) (int, error) {
	rows, err := r.List("", locationID)
	return len(rows), err
}

// CountByProduct cuenta filas de un producto (guard para borrarlo).
func (r *InventoryLocationRepo) CountByProduct(productID string) (int, error) {
	rows, err := r.List(productID, "")
	return len(rows), err
}
