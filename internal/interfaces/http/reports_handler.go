package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/application/reports"
	"github.com/almacen-app/almacen-api/internal/domain/repository"
)

// ReportsHandler expone el tablero, la bitácora de auditoría y los
// ajustes del sistema.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero de inventario
// @Description  Totales, productos con stock bajo y valor del inventario a costo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AuditLog godoc
// @Summary      Consultar bitácora de auditoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        actor_id    query  string  false  "Filtrar por usuario"
// @Param        action      query  string  false  "Filtrar por acción"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Máximo de entradas (default 50)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/reports/audit [get]
func (h *ReportsHandler) AuditLog(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	f := repository.AuditFilter{
		ActorID:   c.Query("actor_id"),
		Action:    c.Query("action"),
		ProductID: c.Query("product_id"),
		Limit:     limit,
		Offset:    offset,
	}
	out, err := h.uc.AuditLog(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSettings godoc
// @Summary      Listar ajustes del sistema
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SettingResponse
// @Router       /api/settings [get]
func (h *ReportsHandler) ListSettings(c *fiber.Ctx) error {
	out, err := h.uc.Settings()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSetting godoc
// @Summary      Actualizar un ajuste (solo admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre del ajuste"
// @Param        body  body  dto.UpdateSettingRequest  true  "Nuevo valor"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/{name} [put]
func (h *ReportsHandler) UpdateSetting(c *fiber.Ctx) error {
	var in dto.UpdateSettingRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateSetting(c.Params("name"), in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
