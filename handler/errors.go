package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"octofit-backend/errs"
)

// ErrorHandler maps handler errors onto HTTP responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe errs.FieldErrors
	var fErr *fiber.Error

	switch {
	case errors.As(err, &fe):
		return c.Status(fiber.StatusBadRequest).JSON(fe)
	case errors.Is(err, errs.ErrInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrInvalidID):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": err.Error()})
	case errors.As(err, &fErr):
		return c.Status(fErr.Code).JSON(fiber.Map{"detail": fErr.Message})
	case errors.Is(err, errs.ErrDatabase), errors.Is(err, errs.ErrCryptographic):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	requestLogger(c).Error("unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": errs.ErrInternal.Error()})
}
