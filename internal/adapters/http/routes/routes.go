package routes

import (
	"univ-biblio/internal/adapters/http/handlers"
	"univ-biblio/internal/adapters/http/middleware"
	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/config"
	"univ-biblio/internal/core/services"
	"univ-biblio/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	clk := clock.System()

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, loanRepo)
	bookService := services.NewBookService(db, bookRepo, loanRepo)
	loanService := services.NewLoanService(db, bookRepo, loanRepo, clk)
	dashboardService := services.NewDashboardService(userRepo, bookRepo, loanRepo, clk)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	bookHandler := handlers.NewBookHandler(bookService)
	loanHandler := handlers.NewLoanHandler(loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		bookHandler, loanHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bookHandler *handlers.BookHandler,
	loanHandler *handlers.LoanHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Profile routes (Authenticated users)
	meRoutes := router.Group("/users/me")
	meRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(meRoutes, userHandler)

	// Student management routes (Admin only)
	studentRoutes := router.Group("/students")
	studentRoutes.Use(middleware.AuthMiddleware(cfg))
	studentRoutes.Use(middleware.AdminOnly())
	setupStudentRoutes(studentRoutes, userHandler)

	// Book routes (reads authenticated, mutations admin only)
	bookRoutes := router.Group("/books")
	bookRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookRoutes(bookRoutes, bookHandler)

	// Loan routes (Authenticated users)
	loanRoutes := router.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// Dashboard & stats routes
	dashRoutes := router.Group("")
	dashRoutes.Use(middleware.AuthMiddleware(cfg))
	dashRoutes.Get("/dashboard", dashboardHandler.Dashboard)
	dashRoutes.Get("/stats", middleware.AdminOnly(), dashboardHandler.Stats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.Me)
	router.Put("/", handler.UpdateMe)
	router.Put("/password", handler.ChangePassword)
}

// setupStudentRoutes configures student management routes (Admin only)
func setupStudentRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupBookRoutes configures book catalogue routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler) {
	router.Get("/", handler.List)
	router.Get("/popular", handler.MostBorrowed)
	router.Get("/:id", handler.Get)

	// Admin only mutations
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupLoanRoutes configures borrow/return routes (Authenticated)
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/borrow", handler.Borrow)
	router.Post("/return", handler.Return)
	router.Get("/me", handler.MyLoans)
}
