package rest

import (
	"errors"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/logging"
	"github.com/gofiber/fiber/v3"
)

const (
	detailCredentials = "Could not validate credentials"
	detailInternal    = "Internal server error"
)

// classify maps an error to a status code and a client-safe detail message.
// Storage and driver errors never reach the client.
func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return fiber.StatusBadRequest, "Email already registered"
	case errors.Is(err, common.ErrInvalidUsername):
		return fiber.StatusBadRequest, "Username must be 3-30 characters, alphanumeric and underscore only"
	case errors.Is(err, common.ErrUsernameTaken):
		return fiber.StatusBadRequest, "Username already taken"
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrAccountDisabled):
		return fiber.StatusUnauthorized, "Account disabled"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized, detailCredentials
	case errors.Is(err, common.ErrorForbidden):
		return fiber.StatusForbidden, "Not authorized"
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorInvalidInput):
		return fiber.StatusUnprocessableEntity, err.Error()
	default:
		return fiber.StatusInternalServerError, detailInternal
	}
}

func errorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code, detail := classify(err)
		if code >= fiber.StatusInternalServerError {
			log.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"detail": detail})
	}
}

// rename swaps the detail of a matching error for a route-specific one.
func rename(err, target error, code int, detail string) error {
	if errors.Is(err, target) {
		return fiber.NewError(code, detail)
	}
	return err
}
