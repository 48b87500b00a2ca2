package routes

import (
	"time"

	"stampcard/internal/adapters/http/handlers"
	"stampcard/internal/adapters/http/middleware"
	"stampcard/internal/adapters/persistence/repositories"
	"stampcard/internal/adapters/persistence/store"
	"stampcard/internal/config"
	"stampcard/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Services holds the wired core services
type Services struct {
	Client    *services.ClientService
	Event     *services.EventService
	Stamp     *services.StampService
	Promotion *services.PromotionService
	Erasure   *services.ErasureService
	Account   *services.AccountService
	StaffAuth *services.StaffAuthService
	Export    *services.ExportService
}

// NewServices builds repositories and services on top of the record store
func NewServices(s *store.Store, cfg *config.Config) *Services {
	// Initialize repositories
	clientRepo := repositories.NewClientRepository(s)
	eventRepo := repositories.NewEventRepository(s)
	stampRepo := repositories.NewStampRepository(s)
	promoRepo := repositories.NewPromotionRepository(s)

	// Initialize services
	eventService := services.NewEventService(eventRepo)
	clientService := services.NewClientService(clientRepo, stampRepo, eventService, cfg.Program.Stamps.Threshold)
	stampService := services.NewStampService(stampRepo, eventService)

	return &Services{
		Client:    clientService,
		Event:     eventService,
		Stamp:     stampService,
		Promotion: services.NewPromotionService(promoRepo),
		Erasure:   services.NewErasureService(clientService, clientRepo, eventRepo, stampRepo),
		Account:   services.NewAccountService(clientService, stampService, eventService),
		StaffAuth: services.NewStaffAuthService(cfg),
		Export:    services.NewExportService(s, clientRepo, eventRepo, stampRepo, promoRepo),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, s *store.Store, svc *Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(s, cfg)
	clientHandler := handlers.NewClientHandler(svc.Client, svc.Account, svc.Erasure, cfg)
	staffHandler := handlers.NewStaffHandler(svc.StaffAuth, svc.Client, svc.Stamp, svc.Event, svc.Account, cfg)
	promotionHandler := handlers.NewPromotionHandler(svc.Promotion)
	exportHandler := handlers.NewExportHandler(svc.Export)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Public program & promotions
	apiV1.Get("/program", middleware.PublicCache(5*time.Minute), healthHandler.Program)
	apiV1.Get("/promotions", middleware.PublicCache(1*time.Minute), promotionHandler.Visible)

	// Client routes (public, token authenticated)
	setupClientRoutes(apiV1, clientHandler)

	// Staff routes
	staffRoutes := apiV1.Group("/staff", middleware.NoCacheHeaders())
	setupStaffRoutes(staffRoutes, staffHandler, clientHandler, svc.StaffAuth)

	// Admin routes (admin only)
	adminRoutes := apiV1.Group("/admin", middleware.NoCacheHeaders())
	adminRoutes.Use(middleware.StaffAuth(svc.StaffAuth))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, promotionHandler, exportHandler)
}

// setupClientRoutes configures registration and account routes
func setupClientRoutes(router fiber.Router, handler *handlers.ClientHandler) {
	qrRoutes := router.Group("/qr")
	qrRoutes.Post("/register", middleware.StrictRateLimiter(), handler.Register)

	accountRoutes := router.Group("/account", middleware.NoCacheHeaders())
	accountRoutes.Get("/", handler.Account)
	accountRoutes.Get("/qr.png", handler.QRImage)
	accountRoutes.Delete("/", middleware.StrictRateLimiter(), handler.Erase)
}

// setupStaffRoutes configures the staff counter routes
func setupStaffRoutes(router fiber.Router, handler *handlers.StaffHandler, clientHandler *handlers.ClientHandler, sessions middleware.SessionValidator) {
	// Public
	router.Post("/login", middleware.PINRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Staff or admin
	auth := middleware.StaffAuth(sessions)
	staffOnly := middleware.StaffOrAdmin()
	router.Post("/scan", auth, staffOnly, handler.Scan)
	router.Post("/recover", auth, staffOnly, clientHandler.Recover)
	router.Get("/clients", auth, staffOnly, handler.ListClients)
	router.Post("/clients", auth, staffOnly, handler.CreateClient)
	router.Get("/clients/:id", auth, staffOnly, handler.GetClient)
	router.Post("/clients/:id/stamps", auth, staffOnly, handler.AddStamp)
	router.Post("/clients/:id/purchases", auth, staffOnly, handler.RegisterPurchase)
	router.Post("/clients/:id/discounts", auth, staffOnly, handler.ApplyDiscount)
}

// setupAdminRoutes configures promotion management and export routes
func setupAdminRoutes(router fiber.Router, promotionHandler *handlers.PromotionHandler, exportHandler *handlers.ExportHandler) {
	router.Get("/promotions", promotionHandler.List)
	router.Post("/promotions", promotionHandler.Create)
	router.Get("/promotions/:id", promotionHandler.Get)
	router.Put("/promotions/:id", promotionHandler.Update)
	router.Patch("/promotions/:id/status", promotionHandler.UpdateStatus)
	router.Delete("/promotions/:id", promotionHandler.Delete)

	router.Get("/export", exportHandler.Export)
}
