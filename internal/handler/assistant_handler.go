package handler

import (
	"strings"

	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	service service.AssistantService
}

func NewAssistantHandler(s service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: s}
}

type askRequest struct {
	Query string `json:"query"`
}

func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Query is required"})
	}

	return c.JSON(fiber.Map{"answer": h.service.Ask(req.Query)})
}

// GetRestockSuggestions never fails: assistant outages surface as an
// empty list so the inventory screens keep working.
func (h *AssistantHandler) GetRestockSuggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suggestions": h.service.RestockSuggestions()})
}
