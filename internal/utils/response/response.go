// Package response writes the JSON envelopes returned by every endpoint.
package response

import (
	"errors"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/logger"
	"simplepay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenericErrorMessage masks errors whose details must stay in the logs.
const GenericErrorMessage = "An error has occurred"

const validationMessage = "The given data was invalid."

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Paginated adds the page metadata next to the data.
func Paginated(c *fiber.Ctx, message string, data interface{}, meta fiber.Map) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
		"meta":    meta,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func ValidationError(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": validationMessage,
		"errors":  errs,
	})
}

// ErrorHandler turns errors returned by handlers into the error envelope.
// Domain errors and validation errors surface their own message; anything
// else is logged and answered with a generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var errs validation.Errors
		if errors.As(err, &errs) {
			return ValidationError(c, errs)
		}

		var de *apperrors.DomainError
		if errors.As(err, &de) {
			if de.Status >= fiber.StatusInternalServerError {
				logError(log, c, err)
			}
			return Error(c, apperrors.HTTPStatus(de), de.Message)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}

		logError(log, c, err)
		return Error(c, fiber.StatusInternalServerError, GenericErrorMessage)
	}
}

func logError(log *zap.Logger, c *fiber.Ctx, err error) {
	fields := append(logger.ErrorFields(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	if id, ok := c.Locals("requestid").(string); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	log.Error("request failed", fields...)
}
