package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-app/almacen-api/internal/application/catalog"
	"github.com/almacen-app/almacen-api/internal/application/dto"
)

// CatalogHandler maneja categorías, subcategorías, marcas, proveedores y
// tasas de impuesto (protegido). Entidades de referencia simples: sin Update
// salvo proveedores.
type CatalogHandler struct {
	categories *catalog.CategoryUseCase
	brands     *catalog.BrandUseCase
	suppliers  *catalog.SupplierUseCase
	taxRates   *catalog.TaxRateUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(
	categories *catalog.CategoryUseCase,
	brands *catalog.BrandUseCase,
	suppliers *catalog.SupplierUseCase,
	taxRates *catalog.TaxRateUseCase,
) *CatalogHandler {
	return &CatalogHandler{categories: categories, brands: brands, suppliers: suppliers, taxRates: taxRates}
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre y descripción"
// @Success      201   {object}  dto.CategoryResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.categories.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Description  Se rechaza si tiene productos o subcategorías.
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSubcategory godoc
// @Summary      Crear subcategoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría padre"
// @Param        body  body  dto.CreateSubcategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.SubcategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/subcategories [post]
func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	var in dto.CreateSubcategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.categories.CreateSubcategory(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSubcategories godoc
// @Summary      Listar subcategorías de una categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {array}  dto.SubcategoryResponse
// @Router       /api/categories/{id}/subcategories [get]
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	out, err := h.categories.ListSubcategories(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSubcategory godoc
// @Summary      Eliminar subcategoría
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID de la subcategoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [delete]
func (h *CatalogHandler) DeleteSubcategory(c *fiber.Ctx) error {
	if err := h.categories.DeleteSubcategory(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrandRequest  true  "Nombre"
// @Success      201   {object}  dto.BrandResponse
// @Router       /api/brands [post]
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.brands.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrandResponse
// @Router       /api/brands [get]
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	out, err := h.brands.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Eliminar marca
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID de la marca"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.brands.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.suppliers.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.suppliers.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.suppliers.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID del proveedor"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.suppliers.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTaxRate godoc
// @Summary      Crear tasa de impuesto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaxRateRequest  true  "Nombre y tasa (porcentaje)"
// @Success      201   {object}  dto.TaxRateResponse
// @Router       /api/tax-rates [post]
func (h *CatalogHandler) CreateTaxRate(c *fiber.Ctx) error {
	var in dto.CreateTaxRateRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.taxRates.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTaxRates godoc
// @Summary      Listar tasas de impuesto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TaxRateResponse
// @Router       /api/tax-rates [get]
func (h *CatalogHandler) ListTaxRates(c *fiber.Ctx) error {
	out, err := h.taxRates.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteTaxRate godoc
// @Summary      Eliminar tasa de impuesto
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tasa"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tax-rates/{id} [delete]
func (h *CatalogHandler) DeleteTaxRate(c *fiber.Ctx) error {
	if err := h.taxRates.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
