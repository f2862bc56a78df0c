package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires the register routes against an in-memory database,
// without the auth middleware (handlers fall back to a fixed session).
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	catalog := service.NewCatalogService(productRepo, nil)
	carts := service.NewCartService(productRepo)
	checkout := service.NewCheckoutService(carts, productRepo, saleRepo, db, nil)

	catalogHandler := NewCatalogHandler(catalog)
	posHandler := NewPOSHandler(carts, checkout)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Get("/cart", posHandler.GetCart)
	api.Post("/cart/items", posHandler.AddCartItem)
	api.Delete("/cart/items/:productId", posHandler.RemoveCartItem)
	api.Post("/cart/checkout", posHandler.Checkout)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestPOSRoutes_CheckoutFlow(t *testing.T) {
	app, db := newTestApp(t)

	product := model.Product{Name: "Pain Baguette", Price: 150, Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	// Add two units to the cart.
	resp, body := doJSON(t, app, "POST", "/api/v1/cart/items", fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   2,
	})
	require.Equal(t, 200, resp.StatusCode, string(body))

	var cart service.CartView
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Equal(t, int64(300), cart.Total)

	// Checkout with cash.
	resp, body = doJSON(t, app, "POST", "/api/v1/cart/checkout", fiber.Map{
		"payment_method": "cash",
	})
	require.Equal(t, 201, resp.StatusCode, string(body))

	var result struct {
		Data model.Sale `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(300), result.Data.Total)
	require.Len(t, result.Data.Items, 1)
	assert.Equal(t, int64(150), result.Data.Items[0].PriceAtSale)

	// Stock was reconciled and the cart is empty again.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)

	resp, body = doJSON(t, app, "GET", "/api/v1/cart", nil)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Empty(t, cart.Lines)
}

func TestPOSRoutes_InsufficientStock(t *testing.T) {
	app, db := newTestApp(t)

	product := model.Product{Name: "Rupture", Price: 500, Stock: 0}
	require.NoError(t, db.Create(&product).Error)

	resp, body := doJSON(t, app, "POST", "/api/v1/cart/items", fiber.Map{
		"product_id": product.ID.String(),
		"quantity":   1,
	})
	assert.Equal(t, 409, resp.StatusCode)
	assert.Contains(t, string(body), "insufficient stock")
}

func TestPOSRoutes_CheckoutNotReady(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/cart/checkout", fiber.Map{
		"payment_method": "cash",
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCatalogRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("create product", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/api/v1/products", fiber.Map{
			"name": "Sucre Granulé 1kg", "category": "Épicerie", "price": 800, "stock": 25,
		})
		require.Equal(t, 201, resp.StatusCode, string(body))
	})

	t.Run("rejects invalid product", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/v1/products", fiber.Map{"price": -1})
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("search filters by substring", func(t *testing.T) {
		resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/v1/products?q=%s", "sucre"), nil)
		require.Equal(t, 200, resp.StatusCode)

		var products []model.Product
		require.NoError(t, json.Unmarshal(body, &products))
		require.Len(t, products, 1)
		assert.Equal(t, "Sucre Granulé 1kg", products[0].Name)
	})
}
