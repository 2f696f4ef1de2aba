package jsonstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.TaxRateRepository  = (*TaxRateRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// CategoryRepo categorías y subcategorías sobre el documento JSON.
type CategoryRepo struct{ src dataSource }

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(src dataSource) *CategoryRepo { return &CategoryRepo{src: src} }

func (r *CategoryRepo) Create(c *entity.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	return r.src.mutate(func(d *database) error {
		d.Categories = append(d.Categories, c)
		return nil
	})
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var found *entity.Category
	err := r.src.view(func(d *database) error {
		for _, c := range d.Categories {
			if c.ID == id {
				found = c
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.src.view(func(d *database) error {
		out = append(out, d.Categories...)
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(c *entity.Category) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Categories {
			if existing.ID == c.ID {
				c.CreatedAt = existing.CreatedAt
				d.Categories[i] = c
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CategoryRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, c := range d.Categories {
			if c.ID == id {
				d.Categories = append(d.Categories[:i], d.Categories[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CategoryRepo) CreateSubcategory(s *entity.Subcategory) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()
	return r.src.mutate(func(d *database) error {
		d.Subcategories = append(d.Subcategories, s)
		return nil
	})
}

func (r *CategoryRepo) GetSubcategory(id string) (*entity.Subcategory, error) {
	var found *entity.Subcategory
	err := r.src.view(func(d *database) error {
		for _, s := range d.Subcategories {
			if s.ID == id {
				found = s
				break
			}
		}
		return nil
	})
	return found, err
}

// ListSubcategories filtra por categoría; vacío devuelve todas.
func (r *CategoryRepo) ListSubcategories(categoryID string) ([]*entity.Subcategory, error) {
	var out []*entity.Subcategory
	err := r.src.view(func(d *database) error {
		for _, s := range d.Subcategories {
			if categoryID == "" || s.CategoryID == categoryID {
				out = append(out, s)
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) DeleteSubcategory(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, s := range d.Subcategories {
			if s.ID == id {
				d.Subcategories = append(d.Subcategories[:i], d.Subcategories[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CategoryRepo) CountSubcategories(categoryID string) (int, error) {
	subs, err := r.ListSubcategories(categoryID)
	return len(subs), err
}

// BrandRepo marcas sobre el documento JSON.
type BrandRepo struct{ src dataSource }

// NewBrandRepository construye el adaptador.
func NewBrandRepository(src dataSource) *BrandRepo { return &BrandRepo{src: src} }

func (r *BrandRepo) Create(b *entity.Brand) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()
	return r.src.mutate(func(d *database) error {
		d.Brands = append(d.Brands, b)
		return nil
	})
}

func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	var found *entity.Brand
	err := r.src.view(func(d *database) error {
		for _, b := range d.Brands {
			if b.ID == id {
				found = b
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *BrandRepo) List() ([]*entity.Brand, error) {
	var out []*entity.Brand
	err := r.src.view(func(d *database) error {
		out = append(out, d.Brands...)
		return nil
	})
	return out, err
}

func (r *BrandRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, b := range d.Brands {
			if b.ID == id {
				d.Brands = append(d.Brands[:i], d.Brands[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// SupplierRepo proveedores sobre el documento JSON.
type SupplierRepo struct{ src dataSource }

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(src dataSource) *SupplierRepo { return &SupplierRepo{src: src} }

func (r *SupplierRepo) Create(s *entity.Supplier) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	return r.src.mutate(func(d *database) error {
		d.Suppliers = append(d.Suppliers, s)
		return nil
	})
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	var found *entity.Supplier
	err := r.src.view(func(d *database) error {
		for _, s := range d.Suppliers {
			if s.ID == id {
				found = s
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.src.view(func(d *database) error {
		out = append(out, d.Suppliers...)
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(s *entity.Supplier) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Suppliers {
			if existing.ID == s.ID {
				s.CreatedAt = existing.CreatedAt
				s.UpdatedAt = time.Now()
				d.Suppliers[i] = s
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *SupplierRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, s := range d.Suppliers {
			if s.ID == id {
				d.Suppliers = append(d.Suppliers[:i], d.Suppliers[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// CustomerRepo clientes sobre el documento JSON.
type CustomerRepo struct{ src dataSource }

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(src dataSource) *CustomerRepo { return &CustomerRepo{src: src} }

func (r *CustomerRepo) Create(c *entity.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.src.mutate(func(d *database) error {
		d.Customers = append(d.Customers, c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	var found *entity.Customer
	err := r.src.view(func(d *database) error {
		for _, c := range d.Customers {
			if c.ID == id {
				found = c
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.src.view(func(d *database) error {
		out = append(out, d.Customers...)
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(c *entity.Customer) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Customers {
			if existing.ID == c.ID {
				c.CreatedAt = existing.CreatedAt
				c.UpdatedAt = time.Now()
				d.Customers[i] = c
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CustomerRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, c := range d.Customers {
			if c.ID == id {
				d.Customers = append(d.Customers[:i], d.Customers[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// TaxRateRepo tasas de impuesto sobre el documento JSON.
type TaxRateRepo struct{ src dataSource }

// NewTaxRateRepository construye el adaptador.
func NewTaxRateRepository(src dataSource) *TaxRateRepo { return &TaxRateRepo{src: src} }

func (r *TaxRateRepo) Create(t *entity.TaxRate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now()
	return r.src.mutate(func(d *database) error {
		d.TaxRates = append(d.TaxRates, t)
		return nil
	})
}

func (r *TaxRateRepo) GetByID(id string) (*entity.TaxRate, error) {
	var found *entity.TaxRate
	err := r.src.view(func(d *database) error {
		for _, t := range d.TaxRates {
			if t.ID == id {
				found = t
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *TaxRateRepo) List() ([]*entity.TaxRate, error) {
	var out []*entity.TaxRate
	err := r.src.view(func(d *database) error {
		out = append(out, d.TaxRates...)
		return nil
	})
	return out, err
}

func (r *TaxRateRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, t := range d.TaxRates {
			if t.ID == id {
				d.TaxRates = append(d.TaxRates[:i], d.TaxRates[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// LocationRepo ubicaciones físicas sobre el documento JSON.
type LocationRepo struct{ src dataSource }

// NewLocationRepository construye el adaptador.
func NewLocationRepository(src dataSource) *LocationRepo { return &LocationRepo{src: src} }

func (r *LocationRepo) Create(l *entity.Location) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	return r.src.mutate(func(d *database) error {
		d.Locations = append(d.Locations, l)
		return nil
	})
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var found *entity.Location
	err := r.src.view(func(d *database) error {
		for _, l := range d.Locations {
			if l.ID == id {
				found = l
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *LocationRepo) List() ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.src.view(func(d *database) error {
		out = append(out, d.Locations...)
		return nil
	})
	return out, err
}

func (r *LocationRepo) Update(l *entity.Location) error {
	return r.src.mutate(func(d *database) error {
		for i, existing := range d.Locations {
			if existing.ID == l.ID {
				l.CreatedAt = existing.CreatedAt
				l.UpdatedAt = time.Now()
				d.Locations[i] = l
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *LocationRepo) Delete(id string) error {
	return r.src.mutate(func(d *database) error {
		for i, l := range d.Locations {
			if l.ID == id {
				d.Locations = append(d.Locations[:i], d.Locations[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}
