package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"

	"sena-biblioteca/internal/adapters/http/handlers"
	"sena-biblioteca/internal/adapters/http/middleware"
	"sena-biblioteca/internal/adapters/persistence/repositories"
	"sena-biblioteca/internal/config"
	"sena-biblioteca/internal/core/services"
)

// Setup configures all routes for the application and wires the
// repository/service graph. It returns the reminder service so the
// caller can start and stop its scheduler.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.ReminderService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	authorRepo := repositories.NewAuthorRepository(db)
	notifyRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, loanRepo)
	bookService := services.NewBookService(bookRepo, loanRepo)
	loanService := services.NewLoanService(loanRepo, bookRepo, userRepo)
	catalogService := services.NewCatalogService(categoryRepo, authorRepo)
	clearanceService := services.NewClearanceService(loanRepo, userRepo)
	dashboardService := services.NewDashboardService(bookRepo, loanRepo, userRepo)
	notifyService := services.NewNotificationService()
	reminderService := services.NewReminderService(loanRepo, notifyRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, clearanceService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(loanService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notifyRepo, reminderService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// User routes (staff)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", middleware.AdminOnly(), userHandler.Create)
	userRoutes.Get("/search", userHandler.Search)
	userRoutes.Get("/document/:documentId", userHandler.GetByDocumentID)
	userRoutes.Get("/:id", userHandler.GetByID)
	userRoutes.Put("/:id", middleware.AdminOnly(), userHandler.Update)
	userRoutes.Delete("/:id", middleware.AdminOnly(), userHandler.Delete)
	userRoutes.Get("/:id/clearance", userHandler.Clearance)
	userRoutes.Get("/:id/notifications", notificationHandler.GetByUser)

	// Book routes (public reads, staff writes)
	bookRoutes := apiV1.Group("/books")
	bookRoutes.Get("/", bookHandler.List)
	bookRoutes.Get("/search", bookHandler.Search)
	bookRoutes.Get("/:id", bookHandler.GetByID)
	bookRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Create)
	bookRoutes.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Update)
	bookRoutes.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), bookHandler.Delete)

	// Loan routes (staff)
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Get("/", loanHandler.List)
	loanRoutes.Post("/", loanHandler.Create)
	loanRoutes.Get("/overdue", loanHandler.ListOverdue)
	loanRoutes.Get("/eligibility", loanHandler.CheckEligibility)
	loanRoutes.Get("/:id", loanHandler.GetByID)
	loanRoutes.Post("/:id/return", loanHandler.Return)

	// Catalog master data routes (public reads, staff writes)
	categoryRoutes := apiV1.Group("/categories")
	categoryRoutes.Get("/", catalogHandler.ListCategories)
	categoryRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.CreateCategory)
	categoryRoutes.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.UpdateCategory)
	categoryRoutes.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.DeleteCategory)

	authorRoutes := apiV1.Group("/authors")
	authorRoutes.Get("/", catalogHandler.ListAuthors)
	authorRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.CreateAuthor)
	authorRoutes.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.UpdateAuthor)
	authorRoutes.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), catalogHandler.DeleteAuthor)

	// Dashboard routes (staff)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/stats", dashboardHandler.GetStats)

	// Notification routes (staff reads own feed, admin triggers sweep)
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Get("/", notificationHandler.GetMine)
	notificationRoutes.Post("/sweep", middleware.AdminOnly(), notificationHandler.RunSweep)

	return reminderService
}
