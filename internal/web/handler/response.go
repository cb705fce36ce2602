package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Error responds with {"error": msg}.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// InternalError logs err and responds with a generic 500.
func InternalError(c *fiber.Ctx, err error, logMsg string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg(logMsg)

	return Error(c, fiber.StatusInternalServerError, MsgInternalError)
}

// ValidationMessage turns validator errors into a short client message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MsgInvalidBody
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return "Invalid fields: " + strings.Join(fields, ", ")
}
