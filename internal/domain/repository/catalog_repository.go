package repository

import "github.com/almacen-app/almacen-api/internal/domain/entity"

// CategoryRepository puerto de categorías y subcategorías.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(c *entity.Category) error
	Delete(id string) error

	CreateSubcategory(s *entity.Subcategory) error
	GetSubcategory(id string) (*entity.Subcategory, error)
	ListSubcategories(categoryID string) ([]*entity.Subcategory, error)
	DeleteSubcategory(id string) error
	CountSubcategories(categoryID string) (int, error)
}

// BrandRepository puerto de marcas.
type BrandRepository interface {
	Create(b *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	List() ([]*entity.Brand, error)
	Delete(id string) error
}

// SupplierRepository puerto de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id string) error
}

// CustomerRepository puerto de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(c *entity.Customer) error
	Delete(id string) error
}

// TaxRateRepository puerto de tasas de impuesto.
type TaxRateRepository interface {
	Create(t *entity.TaxRate) error
	GetByID(id string) (*entity.TaxRate, error)
	List() ([]*entity.TaxRate, error)
	Delete(id string) error
}
