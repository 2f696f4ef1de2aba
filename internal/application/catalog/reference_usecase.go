package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CategoryUseCase CRUD de categorías y subcategorías.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Delete elimina una categoría sin productos ni subcategorías asociados.
func (uc *CategoryUseCase) Delete(id string) error {
	cat, err := uc.categories.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	used, err := uc.products.CountByCategory(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrConflict
	}
	subs, err := uc.categories.CountSubcategories(id)
	if err != nil {
		return err
	}
	if subs > 0 {
		return domain.ErrConflict
	}
	return uc.categories.Delete(id)
}

// CreateSubcategory crea una subcategoría bajo una categoría existente.
func (uc *CategoryUseCase) CreateSubcategory(categoryID string, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	cat, err := uc.categories.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	sub := &entity.Subcategory{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		Name:       in.Name,
		CreatedAt:  time.Now(),
	}
	if err := uc.categories.CreateSubcategory(sub); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(sub), nil
}

// ListSubcategories lista las subcategorías de una categoría.
func (uc *CategoryUseCase) ListSubcategories(categoryID string) ([]dto.SubcategoryResponse, error) {
	list, err := uc.categories.ListSubcategories(categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubcategoryResponse(s))
	}
	return items, nil
}

// DeleteSubcategory elimina una subcategoría.
func (uc *CategoryUseCase) DeleteSubcategory(id string) error {
	sub, err := uc.categories.GetSubcategory(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	return uc.categories.DeleteSubcategory(id)
}

// BrandUseCase CRUD de marcas.
type BrandUseCase struct {
	brands   repository.BrandRepository
	products repository.ProductRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(brands repository.BrandRepository, products repository.ProductRepository) *BrandUseCase {
	return &BrandUseCase{brands: brands, products: products}
}

// Create crea una marca.
func (uc *BrandUseCase) Create(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.brands.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// List lista todas las marcas.
func (uc *BrandUseCase) List() ([]dto.BrandResponse, error) {
	list, err := uc.brands.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return items, nil
}

// Delete elimina una marca sin productos asociados.
func (uc *BrandUseCase) Delete(id string) error {
	brand, err := uc.brands.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	used, err := uc.products.CountByBrand(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrConflict
	}
	return uc.brands.Delete(id)
}

// TaxRateUseCase CRUD de tasas de impuesto.
type TaxRateUseCase struct {
	taxRates repository.TaxRateRepository
	invoices repository.InvoiceRepository
}

// NewTaxRateUseCase construye el caso de uso.
func NewTaxRateUseCase(taxRates repository.TaxRateRepository, invoices repository.InvoiceRepository) *TaxRateUseCase {
	return &TaxRateUseCase{taxRates: taxRates, invoices: invoices}
}

// Create crea una tasa de impuesto. Rate debe estar entre 0 y 100.
func (uc *TaxRateUseCase) Create(in dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	if in.Rate.IsNegative() || in.Rate.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	rate := &entity.TaxRate{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Rate:      in.Rate,
		CreatedAt: time.Now(),
	}
	if err := uc.taxRates.Create(rate); err != nil {
		return nil, err
	}
	return toTaxRateResponse(rate), nil
}

// List lista todas las tasas.
func (uc *TaxRateUseCase) List() ([]dto.TaxRateResponse, error) {
	list, err := uc.taxRates.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaxRateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTaxRateResponse(t))
	}
	return items, nil
}

// Delete elimina una tasa que ninguna factura use.
func (uc *TaxRateUseCase) Delete(id string) error {
	rate, err := uc.taxRates.GetByID(id)
	if err != nil {
		return err
	}
	if rate == nil {
		return domain.ErrNotFound
	}
	used, err := uc.invoices.CountByTaxRate(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return domain.ErrConflict
	}
	return uc.taxRates.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	return &dto.SubcategoryResponse{ID: s.ID, CategoryID: s.CategoryID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}

func toTaxRateResponse(t *entity.TaxRate) *dto.TaxRateResponse {
	return &dto.TaxRateResponse{ID: t.ID, Name: t.Name, Rate: t.Rate, CreatedAt: t.CreatedAt}
}
