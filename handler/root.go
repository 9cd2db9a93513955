package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"octofit-backend/store"
)

type rootHandler struct {
	baseURL string
	store   *store.Store
}

// Root lists the absolute URL of every collection. The origin comes from the
// configured base URL, or from the request when none is set.
func (h *rootHandler) Root(c *fiber.Ctx) error {
	base := h.baseURL
	if base == "" {
		base = c.BaseURL()
	}
	base = strings.TrimRight(base, "/")

	res := make(fiber.Map, len(Collections))
	for _, name := range Collections {
		res[name] = base + "/api/" + name + "/"
	}

	return c.JSON(res)
}

func (h *rootHandler) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		requestLogger(c).Warn("store ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).SendString("unavailable")
	}

	return c.SendString("ok")
}

func NewRootHandler(baseURL string, s *store.Store) *rootHandler {
	return &rootHandler{
		baseURL: baseURL,
		store:   s,
	}
}
