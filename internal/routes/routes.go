package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	"github.com/sweetworks/sweetshop-api/internal/config"
	"github.com/sweetworks/sweetshop-api/internal/handlers"
	infraRepo "github.com/sweetworks/sweetshop-api/internal/infra/repository"
	"github.com/sweetworks/sweetshop-api/internal/middleware"
	"github.com/sweetworks/sweetshop-api/internal/storage"
	"github.com/sweetworks/sweetshop-api/internal/token"
	ucsweet "github.com/sweetworks/sweetshop-api/internal/usecase/sweet"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	sweetRepo := infraRepo.NewSweetGormRepository(db)
	imageRelay := storage.NewS3Relay(cfg, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — SWEETS
	// ======================================================
	addSweetUC := ucsweet.NewAddSweet(sweetRepo, imageRelay, auditDispatcher, log)
	listSweetsUC := ucsweet.NewListSweets(sweetRepo)
	searchSweetsUC := ucsweet.NewSearchSweets(sweetRepo)
	restockSweetUC := ucsweet.NewRestockSweet(sweetRepo, auditDispatcher)
	purchaseSweetUC := ucsweet.NewPurchaseSweet(sweetRepo, auditDispatcher)
	updateSweetUC := ucsweet.NewUpdateSweet(sweetRepo, imageRelay, auditDispatcher, log)
	deleteSweetUC := ucsweet.NewDeleteSweet(sweetRepo, imageRelay, auditDispatcher, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens)
	shopHandler := handlers.NewShopHandler(db, tokens)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	sweetHandler := handlers.NewSweetHandler(
		addSweetUC,
		listSweetsUC,
		searchSweetsUC,
		restockSweetUC,
		purchaseSweetUC,
		updateSweetUC,
		deleteSweetUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.POST("/shop/register", shopHandler.Register)
		api.POST("/shop/login", shopHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/sweet/search", sweetHandler.Search)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/sweet/add", sweetHandler.Add)
			secured.GET("/sweet/bulk", sweetHandler.Bulk)
			secured.POST("/sweet/:id/purchase", sweetHandler.Purchase)
			secured.PUT("/sweet/update/:id", sweetHandler.Update)
			secured.DELETE("/sweet/delete/:id", sweetHandler.Delete)

			secured.POST("/sweet/:id/restock", middleware.RequireAdmin(), sweetHandler.Restock)

			secured.GET("/shop/audit-logs", auditLogsHandler.List)
		}
	}
}
