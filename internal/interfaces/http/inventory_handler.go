package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/application/ledger"
)

// InventoryHandler expone las operaciones del libro de inventario (protegido).
// Toda mutación exige el actor del token para la atribución en la bitácora.
type InventoryHandler struct {
	ledger *ledger.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *ledger.Service) *InventoryHandler {
	return &InventoryHandler{ledger: svc}
}

// Receive godoc
// @Summary      Recibir mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "product_id, quantity, location_id opcional"
// @Success      200   {object}  dto.StockQuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	newQty, err := h.ledger.Receive(c.Context(), GetUserID(c), ledger.ReceiveInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		LocationID: in.LocationID,
		SupplierID: in.SupplierID,
		BatchRef:   in.BatchRef,
		Notes:      in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockQuantityResponse{ProductID: in.ProductID, NewQuantity: newQty})
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Delta con signo. Un ajuste que dejaría el stock negativo se
// @Description  rechaza completo con 409 y el detalle de lo disponible.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, delta, reason"
// @Success      200   {object}  dto.StockQuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	newQty, err := h.ledger.Adjust(c.Context(), GetUserID(c), ledger.AdjustInput{
		ProductID:  in.ProductID,
		Delta:      in.Delta,
		Reason:     in.Reason,
		LocationID: in.LocationID,
		Notes:      in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockQuantityResponse{ProductID: in.ProductID, NewQuantity: newQty})
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Conserva el total del producto; sólo cambia el desglose.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "product_id, from_location_id, to_location_id, quantity"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	fromQty, toQty, err := h.ledger.Transfer(c.Context(), GetUserID(c), ledger.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TransferResponse{
		ProductID:       in.ProductID,
		FromLocationID:  in.FromLocationID,
		ToLocationID:    in.ToLocationID,
		FromNewQuantity: fromQty,
		ToNewQuantity:   toQty,
	})
}

// Deduct godoc
// @Summary      Descontar stock por factura
// @Description  El descuento se recorta a cero si la cantidad supera el stock.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductStockRequest  true  "product_id, quantity, invoice_id"
// @Success      200   {object}  dto.StockQuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/deduct [post]
func (h *InventoryHandler) Deduct(c *fiber.Ctx) error {
	var in dto.DeductStockRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	newQty, err := h.ledger.Deduct(c.Context(), GetUserID(c), ledger.DeductInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		InvoiceID: in.InvoiceID,
		Reason:    in.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockQuantityResponse{ProductID: in.ProductID, NewQuantity: newQty})
}

// Levels godoc
// @Summary      Desglose de stock por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.InventoryLocationResponse
// @Router       /api/inventory/levels [get]
func (h *InventoryHandler) Levels(c *fiber.Ctx) error {
	rows, err := h.ledger.Locations(c.Context(), c.Query("product_id"), c.Query("location_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryLocationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryLocationResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			LocationID: r.LocationID,
			Quantity:   r.Quantity,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Total godoc
// @Summary      Total de stock de un producto
// @Description  Suma del desglose si el producto está rastreado por ubicación;
// @Description  si no, el agregado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockQuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/total/{id} [get]
func (h *InventoryHandler) Total(c *fiber.Ctx) error {
	id := c.Params("id")
	total, err := h.ledger.TotalForProduct(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockQuantityResponse{ProductID: id, NewQuantity: total})
}
