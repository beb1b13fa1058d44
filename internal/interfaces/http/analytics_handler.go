package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/application/usecase"
)

// AnalyticsHandler maneja los reportes de período sobre el libro diario.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetAnalytics godoc
// @Summary      Analítica del período
// @Description  Compras, ventas y utilidad del período; inventario fresco al cierre de end_date
//               y unidades vencidas en el período. No modifica el estado.
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  true  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.AnalyticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "parámetros de consulta inválidos",
		})
	}
	report, err := h.uc.GetAnalytics(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GetRecords godoc
// @Summary      Historial del libro diario
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  true  "Inicio del período (YYYY-MM-DD)"
// @Param        end_date    query  string  true  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  dto.RecordsResponseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/records [get]
func (h *AnalyticsHandler) GetRecords(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "parámetros de consulta inválidos",
		})
	}
	out, err := h.uc.GetRecords(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
