package handler

import (
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// POSHandler serves the register: cart editing and checkout.
type POSHandler struct {
	carts    service.CartService
	checkout service.CheckoutService
}

func NewPOSHandler(carts service.CartService, checkout service.CheckoutService) *POSHandler {
	return &POSHandler{carts: carts, checkout: checkout}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	view, err := h.carts.View(getUserID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(view)
}

func (h *POSHandler) AddCartItem(c *fiber.Ctx) error {
	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1 // tapping a product adds one unit
	}

	productID, err := parseUUID(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.carts.AddLine(getUserID(c), productID, req.Quantity); err != nil {
		return domainError(c, err)
	}

	view, _ := h.carts.View(getUserID(c))
	return c.JSON(view)
}

func (h *POSHandler) RemoveCartItem(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	h.carts.RemoveLine(getUserID(c), productID)

	view, _ := h.carts.View(getUserID(c))
	return c.JSON(view)
}

func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	h.carts.Clear(getUserID(c))
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.checkout.Checkout(getUserID(c), req.PaymentMethod)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale committed", "data": sale})
}
