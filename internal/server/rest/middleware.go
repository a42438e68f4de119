package rest

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/gofiber/fiber/v3"
)

type localsKey string

const userKey localsKey = "user"

// requireAuth resolves the bearer token and stores the user for handlers.
func (s *Server) requireAuth(c fiber.Ctx) error {
	user, err := s.resolver.Resolve(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fiber.NewError(fiber.StatusUnauthorized, detailCredentials)
		}
		return err
	}

	c.Locals(userKey, user)
	return c.Next()
}

// currentUser is only valid behind requireAuth.
func currentUser(c fiber.Ctx) *models.User {
	u, _ := c.Locals(userKey).(*models.User)
	return u
}

// observe records request count and latency per route template.
func (s *Server) observe(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status, _ = classify(err)
	}
	s.metrics.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
	return err
}
