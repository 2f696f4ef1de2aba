package catalog

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD de productos. La cantidad no se toca aquí:
// el stock sólo se mueve por las operaciones del Ledger.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	suppliers  repository.SupplierRepository
	locations  repository.LocationRepository
	levels     repository.InventoryLocationRepository
	invoices   repository.InvoiceRepository
	settings   repository.SettingsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	suppliers repository.SupplierRepository,
	locations repository.LocationRepository,
	levels repository.InventoryLocationRepository,
	invoices repository.InvoiceRepository,
	settings repository.SettingsRepository,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		brands:     brands,
		suppliers:  suppliers,
		locations:  locations,
		levels:     levels,
		invoices:   invoices,
		settings:   settings,
	}
}

// Create crea un producto con cantidad cero. Las referencias a catálogo
// (categoría, marca, proveedor, ubicación) deben existir si se indican.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.checkRefs(in.CategoryID, in.SubcategoryID, in.BrandID, in.SupplierID, in.LocationID); err != nil {
		return nil, err
	}
	if in.Barcode != "" {
		existing, err := uc.products.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Barcode:       in.Barcode,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		BrandID:       in.BrandID,
		SupplierID:    in.SupplierID,
		LocationID:    in.LocationID,
		Price:         in.Price,
		Cost:          in.Cost,
		Quantity:      0,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// GetByBarcode busca un producto por código de barras, para el escáner del
// punto de venta.
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(p))
	}
	return items, nil
}

// Update actualiza los datos del producto. Quantity y CreatedAt se preservan
// en el repositorio.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkRefs(in.CategoryID, in.SubcategoryID, in.BrandID, in.SupplierID, in.LocationID); err != nil {
		return nil, err
	}
	if in.Barcode != "" && in.Barcode != product.Barcode {
		existing, err := uc.products.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Barcode = in.Barcode
	product.CategoryID = in.CategoryID
	product.SubcategoryID = in.SubcategoryID
	product.BrandID = in.BrandID
	product.SupplierID = in.SupplierID
	product.LocationID = in.LocationID
	product.Price = in.Price
	product.Cost = in.Cost
	product.MinStock = in.MinStock
	product.MaxStock = in.MaxStock
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product), nil
}

// Delete elimina un producto. Se rechaza con ErrConflict si el producto aún
// tiene stock o aparece en líneas de factura.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.Quantity > 0 {
		return domain.ErrConflict
	}
	rows, err := uc.levels.CountByProduct(id)
	if err != nil {
		return err
	}
	if rows > 0 {
		return domain.ErrConflict
	}
	used, err := uc.invoices.CountItemsByProduct(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrConflict
	}
	return uc.products.Delete(id)
}

func (uc *ProductUseCase) checkRefs(categoryID, subcategoryID, brandID, supplierID, locationID string) error {
	if categoryID != "" {
		c, err := uc.categories.GetByID(categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInvalidInput
		}
	}
	if subcategoryID != "" {
		s, err := uc.categories.GetSubcategory(subcategoryID)
		if err != nil {
			return err
		}
		if s == nil || (categoryID != "" && s.CategoryID != categoryID) {
			return domain.ErrInvalidInput
		}
	}
	if brandID != "" {
		b, err := uc.brands.GetByID(brandID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrInvalidInput
		}
	}
	if supplierID != "" {
		s, err := uc.suppliers.GetByID(supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrInvalidInput
		}
	}
	if locationID != "" {
		l, err := uc.locations.GetByID(locationID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// lowStockThreshold umbral global cuando el producto no define MinStock.
func (uc *ProductUseCase) lowStockThreshold() int64 {
	raw := uc.settings.GetValue(entity.SettingLowStockThreshold, "5")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 5
	}
	return n
}

func (uc *ProductUseCase) toResponse(p *entity.Product) *dto.ProductResponse {
	min := p.MinStock
	if min <= 0 {
		min = uc.lowStockThreshold()
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		BrandID:       p.BrandID,
		SupplierID:    p.SupplierID,
		LocationID:    p.LocationID,
		Price:         p.Price,
		Cost:          p.Cost,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		LowStock:      p.Quantity <= min,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
