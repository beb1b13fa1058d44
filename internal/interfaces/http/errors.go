package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/perishable-inventory/internal/application/dto"
	"github.com/jhoicas/perishable-inventory/internal/domain"
)

// writeError traduce los errores de dominio a códigos HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrOutOfOrder):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_ORDER", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	// Fallas de almacenamiento: el detalle queda en el log, no en la respuesta.
	logFrom(c).Error().Err(err).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "cuerpo inválido: se espera {\"quantity\": entero, \"date\": \"YYYY-MM-DD\"}",
	})
}

// NotFound responde 404 para rutas no registradas.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
}
