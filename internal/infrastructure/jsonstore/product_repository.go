package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el documento JSON.
type ProductRepo struct {
	src dataSource
}

// NewProductRepository construye el adaptador. Pasar el Store o una tx.
func NewProductRepository(src dataSource) *ProductRepo {
	return &ProductRepo{src: src}
}

// Create persiste un producto nuevo. Rechaza códigos de barras duplicados.
func (r *ProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.src.mutate(func(d *database) error {
		if p.Barcode != "" {
			for _, existing := range d.Products {
				if existing.Barcode == p.Barcode {
					return domain.ErrDuplicate
				}
			}
		}
		d.Products = append(d.Products, p)
		return nil
	})
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var found *entity.Product
	err := r.src.view(func(d *database) error {
		for _, p := range d.Products {
			if p.ID == id {
				found = p
				return nil
			}
		}
		return nil
	})
	return found, err
}

// GetForUpdate en el driver JSON equivale a GetByID: la transacción ya es
// exclusiva sobre el clon.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// GetByBarcode devuelve el producto con ese código de barras, o nil.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	var found *entity.Product
	err := r.src.view(func(d *database) error {
		for _, p := range d.Products {
			if p.Barcode == barcode {
				found = p
				return nil
			}
		}
		return nil
	})
	return found, err
}

// List devuelve una página de productos.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.src.view(func(d *database) error {
		out = page(d.Products, limit, offset)
		return nil
	})
	return out, err
}

// Update reemplaza los datos del producto conservando Quantity: ese campo
// es propiedad exclusiva del Ledger.
func (r *ProductRepo) Update(p *entity.Product) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Products {
			if existing.ID == p.ID {
				p.Quantity = existing.Quantity
				p.CreatedAt = existing.CreatedAt
				p.UpdatedAt = time.Now()
				d.Products[i] = p
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// UpdateQuantity fija el agregado de stock. Sólo el Ledger lo invoca.
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	return r.src.mutate(func(d *database) error {
		for _, p := range d.Products {
			if p.ID == id {
				p.Quantity = quantity
				p.UpdatedAt = time.Now()
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// Delete elimina el producto. Los guards de integridad referencial viven en
// el caso de uso de catálogo, no aquí.
func (r *ProductRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, p := range d.Products {
			if p.ID == id {
				d.Products = append(d.Products[:i], d.Products[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// CountByCategory cuenta productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int, error) {
	return r.countWhere(func(p *entity.Product) bool { return p.CategoryID == categoryID })
}

// CountByBrand cuenta productos que referencian la marca.
func (r *ProductRepo) CountByBrand(brandID string) (int, error) {
	return r.countWhere(func(p *entity.Product) bool { return p.BrandID == brandID })
}

// CountBySupplier cuenta productos que referencian al proveedor.
func (r *ProductRepo) CountBySupplier(supplierID string) (int, error) {
	return r.countWhere(func(p *entity.Product) bool { return p.SupplierID == supplierID })
}

func (r *ProductRepo) countWhere(match func(p *entity.Product) bool) (int, error) {
	n := 0
	err := r.src.view(func(d *database) error {
		for _, p := range d.Products {
			if match(p) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// page aplica limit/offset sobre un slice; limit <= 0 devuelve todo desde offset.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
