package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository, products repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, products: products}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	sup := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.suppliers.Create(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	sup, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(sup), nil
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List() ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Update actualiza los datos de contacto del proveedor.
func (uc *SupplierUseCase) Update(id string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	sup.Name = in.Name
	sup.ContactName = in.ContactName
	sup.Email = in.Email
	sup.Phone = in.Phone
	sup.Address = in.Address
	sup.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// Delete elimina un proveedor sin productos asociados.
func (uc *SupplierUseCase) Delete(id string) error {
	sup, err := uc.suppliers.GetByID(id)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.ErrNotFound
	}
	used, err := uc.products.CountBySupplier(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrConflict
	}
	return uc.suppliers.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
