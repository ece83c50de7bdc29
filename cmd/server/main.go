package main

import (
	"log"
	"strings"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/config"
	"cartonnerie-backend/internal/customers"
	"cartonnerie-backend/internal/dashboard"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/finance"
	"cartonnerie-backend/internal/inventory"
	"cartonnerie-backend/internal/orders"
	"cartonnerie-backend/internal/production"
	"cartonnerie-backend/internal/staff"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erreur inattendue:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erreur serveur inattendue",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public: écran de connexion
	api.Get("/auth/staff", auth.ListLoginStaffHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protégé
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())

	// Inventaire: matières premières
	protected.Get("/materials", inventory.ListMaterialsHandler())
	protected.Post("/materials", inventory.CreateMaterialHandler())
	protected.Put("/materials/:id", inventory.UpdateMaterialHandler())
	protected.Delete("/materials/:id", inventory.DeleteMaterialHandler())

	// Inventaire: produits finis
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", inventory.DeleteProductHandler())

	// Alertes de stock
	protected.Get("/inventory/alerts", inventory.ListAlertsHandler())

	// Production
	protected.Post("/production", production.RunProductionHandler())
	protected.Get("/production/logs", production.ListProductionLogsHandler())

	// Commandes
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Put("/orders/:id/status", orders.UpdateOrderStatusHandler())

	// Clients
	protected.Get("/customers", customers.ListCustomersHandler())
	protected.Post("/customers", customers.CreateCustomerHandler())
	protected.Put("/customers/:id", customers.UpdateCustomerHandler())
	protected.Delete("/customers/:id", customers.DeleteCustomerHandler())

	// Personnel
	protected.Get("/staff", staff.ListStaffHandler())
	protected.Post("/staff", staff.CreateStaffHandler())
	protected.Put("/staff/:id", staff.UpdateStaffHandler())
	protected.Delete("/staff/:id", staff.DeleteStaffHandler())
	protected.Post("/staff/:id/advance", staff.TakeAdvanceHandler())
	protected.Post("/staff/:id/pay-salary", staff.PaySalaryHandler())

	// Finance
	protected.Post("/expenses", finance.CreateExpenseHandler())
	protected.Get("/expenses", finance.ListExpensesHandler())
	protected.Get("/finance/summary", finance.SummaryHandler())
	protected.Get("/finance/summary/export", finance.ExportSummaryHandler())

	// Tableau de bord
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())
	protected.Get("/dashboard/revenue-chart", dashboard.RevenueChartHandler())

	// Journal
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Serveur en écoute sur le port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
