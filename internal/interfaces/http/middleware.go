package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	localRequestID = "request_id"
	localLogger    = "logger"
	headerRequest  = "X-Request-ID"
)

// RequestLogger asigna un request id (o reutiliza X-Request-ID) y escribe una línea de log
// por petición con método, ruta, estado y latencia.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(headerRequest)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequest, id)

		reqLog := log.With().Str("request_id", id).Logger()
		c.Locals(localRequestID, id)
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba el estado antes de loguearlo.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

func logFrom(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return &l
	}
	nop := zerolog.Nop()
	return &nop
}
