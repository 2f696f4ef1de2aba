package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
// El campo Quantity sólo lo escribe el Ledger (UpdateQuantity); el resto de
// la aplicación se limita a leerlo.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(p *entity.Product) error
	// UpdateQuantity fija el agregado de stock. Reservado al Ledger.
	UpdateQuantity(id string, quantity int64) error
	// GetForUpdate lee el producto bloqueando la fila dentro de una
	// transacción (en el driver JSON equivale a GetByID: la tx ya es exclusiva).
	GetForUpdate(id string) (*entity.Product, error)
	Delete(id string) error
	CountByCategory(categoryID string) (int, error)
	CountByBrand(brandID string) (int, error)
	CountBySupplier(supplierID string) (int, error)
}
