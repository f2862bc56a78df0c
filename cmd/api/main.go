package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"
	"go-retail-pos/pkg/genai"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Sale{}, &model.SaleItem{}, &model.User{})

	// 3. Seed the starter catalog and the default operator
	seedCatalogAndOperator(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)

	catalogService := service.NewCatalogService(productRepo, wsHub)
	cartService := service.NewCartService(productRepo)
	checkoutService := service.NewCheckoutService(cartService, productRepo, saleRepo, db, wsHub)
	salesService := service.NewSalesService(saleRepo)
	dashService := service.NewDashboardService(saleRepo)
	assistantService := service.NewAssistantService(productRepo, saleRepo, genai.NewClientFromEnv())
	authService := service.NewAuthService(userRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	posHandler := handler.NewPOSHandler(cartService, checkoutService)
	salesHandler := handler.NewSalesHandler(salesService)
	dashHandler := handler.NewDashboardHandler(dashService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog (inventory views)
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/low-stock", catalogHandler.GetLowStock)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Register (POS view)
	protected.Get("/cart", posHandler.GetCart)
	protected.Post("/cart/items", posHandler.AddCartItem)
	protected.Delete("/cart/items/:productId", posHandler.RemoveCartItem)
	protected.Delete("/cart", posHandler.ClearCart)
	protected.Post("/cart/checkout", posHandler.Checkout)

	// Sale ledger (history view)
	protected.Get("/sales", salesHandler.GetSales)
	protected.Get("/sales/daily-revenue", salesHandler.GetDailyRevenue)
	protected.Get("/sales/:id", salesHandler.GetSale)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/sales-movement", dashHandler.GetSalesMovement)

	// Advisory assistant
	protected.Post("/assistant/ask", assistantHandler.Ask)
	protected.Get("/assistant/restock-suggestions", assistantHandler.GetRestockSuggestions)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedCatalog is the stand-in state used on first start, before the shop
// has entered its own products.
var seedCatalog = []model.Product{
	{Name: "Pain Baguette", Category: "Boulangerie", Price: 150, CostPrice: 100, Stock: 45, MinStock: 20, Unit: "Unité"},
	{Name: "Lait Bonnet Rouge 400g", Category: "Crèmerie", Price: 650, CostPrice: 550, Stock: 12, MinStock: 15, Unit: "Boîte"},
	{Name: "Riz Parfumé 5kg", Category: "Céréales", Price: 4500, CostPrice: 4000, Stock: 8, MinStock: 10, Unit: "Sac"},
	{Name: "Sucre Granulé 1kg", Category: "Épicerie", Price: 800, CostPrice: 700, Stock: 25, MinStock: 10, Unit: "Paquet"},
	{Name: "Huile Dinor 1.5L", Category: "Épicerie", Price: 1700, CostPrice: 1500, Stock: 3, MinStock: 5, Unit: "Bouteille"},
}

// seedCatalogAndOperator loads the fixed seed catalog when no prior state
// exists and makes sure an operator account can log in.
func seedCatalogAndOperator(db *gorm.DB) {
	var productCount int64
	db.Model(&model.Product{}).Count(&productCount)
	if productCount == 0 {
		for i := range seedCatalog {
			if err := db.Create(&seedCatalog[i]).Error; err != nil {
				log.Printf("Warning: Failed to seed product %q: %v", seedCatalog[i].Name, err)
			}
		}
		log.Println("Seed catalog created")
	}

	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		operator := &model.User{
			Email:    "caisse@example.com",
			FullName: "Opérateur Caisse",
			IsActive: true,
		}
		if err := operator.SetPassword("caisse123"); err != nil {
			log.Printf("Warning: Failed to hash operator password: %v", err)
			return
		}
		if err := db.Create(operator).Error; err != nil {
			log.Printf("Warning: Failed to create operator user: %v", err)
		} else {
			log.Println("Operator user created: caisse@example.com / caisse123")
		}
	}
}
