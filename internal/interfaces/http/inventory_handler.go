package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/application/inventory"
)

// InventoryHandler maneja las compras, ventas y la consulta de la cola de lotes.
type InventoryHandler struct {
	uc *inventory.TransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.TransactionUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Purchase godoc
// @Summary      Registrar compra
// @Description  Barre los lotes vencidos a la fecha indicada, registra la compra y devuelve la cola.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransactionRequest  true  "quantity (entero positivo), date (YYYY-MM-DD)"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/purchase [post]
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PurchaseFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Registrar venta
// @Description  Barre los lotes vencidos y consume los lotes más antiguos primero (FIFO).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TransactionRequest  true  "quantity (entero positivo), date (YYYY-MM-DD)"
// @Success      200   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SellFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStore godoc
// @Summary      Cola de lotes actual
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.StoreResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/store [get]
func (h *InventoryHandler) GetStore(c *fiber.Ctx) error {
	out, err := h.uc.StoreSnapshot(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
