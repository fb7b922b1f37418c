package routes

import (
	"packbill-backoffice/internal/adapters/http/handlers"
	"packbill-backoffice/internal/adapters/http/middleware"
	"packbill-backoffice/internal/adapters/persistence/repositories"
	"packbill-backoffice/internal/config"
	"packbill-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	logRepo := repositories.NewLogRepository(db)

	// Initialize services
	logService := services.NewLogService(logRepo, userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, logService, cfg)
	userService := services.NewUserService(userRepo, logService)
	customerService := services.NewCustomerService(customerRepo, logService)
	paymentService := services.NewPaymentService(paymentRepo, customerRepo, logService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	logHandler := handlers.NewLogHandler(logService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group(cfg.BasePath)

	auth := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.AdminOnly()

	// Token endpoints (stricter rate limit, no auth)
	api.Post("/token/", middleware.AuthRateLimiter(), authHandler.Token)
	api.Post("/token/refresh/", middleware.AuthRateLimiter(), authHandler.TokenRefresh)
	api.Post("/token/revoke/", auth, authHandler.Logout)

	// User endpoints (admin only, except own profile)
	api.Get("/users/me/", auth, authHandler.Me)
	api.Get("/users/", auth, adminOnly, userHandler.ListUsers)
	api.Post("/users/register/", auth, adminOnly, userHandler.Register)
	api.Get("/users/:id/", auth, adminOnly, userHandler.GetUser)
	api.Put("/users/:id/", auth, adminOnly, userHandler.UpdateUser)
	api.Delete("/users/:id/", auth, adminOnly, userHandler.DeleteUser)
	api.Post("/users/:id/reactivate/", auth, adminOnly, userHandler.ReactivateUser)

	// Customer endpoints
	api.Get("/customers/", auth, customerHandler.ListCustomers)
	api.Post("/customers/", auth, customerHandler.CreateCustomer)
	api.Get("/customers/:id/", auth, customerHandler.GetCustomer)
	api.Put("/customers/:id/", auth, customerHandler.UpdateCustomer)
	api.Delete("/customers/:id/", auth, customerHandler.DeleteCustomer)
	api.Post("/customers/:id/reactivate/", auth, customerHandler.ReactivateCustomer)

	// Payment endpoints (stats before :id so the router does not shadow it)
	api.Get("/payments/stats/", auth, paymentHandler.Stats)
	api.Get("/payments/", auth, paymentHandler.ListPayments)
	api.Post("/payments/", auth, paymentHandler.CreatePayment)
	api.Get("/payments/:id/", auth, paymentHandler.GetPayment)
	api.Put("/payments/:id/", auth, paymentHandler.UpdatePayment)
	api.Delete("/payments/:id/", auth, paymentHandler.DeletePayment)

	// Audit log endpoints (admin only)
	api.Get("/logs/", auth, adminOnly, logHandler.ListLogs)
}
