package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordensapp/ordens-api/internal/audit"
	"github.com/ordensapp/ordens-api/internal/auth"
	"github.com/ordensapp/ordens-api/internal/config"
	"github.com/ordensapp/ordens-api/internal/handlers"
	infraRepo "github.com/ordensapp/ordens-api/internal/infra/repository"
	"github.com/ordensapp/ordens-api/internal/middleware"
	"github.com/ordensapp/ordens-api/internal/ratelimit"
	ucOrdem "github.com/ordensapp/ordens-api/internal/usecase/ordem"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	ordemRepo := infraRepo.NewOrdemGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var limiter *ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := ratelimit.NewClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		limiter = ratelimit.NewLimiter(redisClient, 10, 0, "auth")
	}

	// ======================================================
	// 🧠 USE CASES — ORDENS
	// ======================================================
	createOrdemUC := ucOrdem.NewCreateOrdem(ordemRepo, auditDispatcher)
	getOrdemUC := ucOrdem.NewGetOrdem(ordemRepo)
	listOrdensUC := ucOrdem.NewListOrdens(ordemRepo)
	listOrdensByClientUC := ucOrdem.NewListOrdensByClient(ordemRepo)
	updateOrdemUC := ucOrdem.NewUpdateOrdem(ordemRepo, auditDispatcher)
	updateOrdemStatusUC := ucOrdem.NewUpdateOrdemStatus(ordemRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, limiter, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)

	ordemHandler := handlers.NewOrdemHandler(
		createOrdemUC,
		getOrdemUC,
		listOrdensUC,
		listOrdensByClientUC,
		updateOrdemUC,
		updateOrdemStatusUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.POST("/me/clients", clientHandler.Create)
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			// ------------------------------
			// ORDENS
			// ------------------------------
			secured.POST("/me/ordens", ordemHandler.Create)
			secured.GET("/me/ordens", ordemHandler.List)
			secured.GET("/me/ordens/:id", ordemHandler.Get)
			secured.PATCH("/me/ordens/:id", ordemHandler.Update)
			secured.PATCH("/me/ordens/:id/status", ordemHandler.UpdateStatus)
			secured.GET("/me/clients/:id/ordens", ordemHandler.ListByClient)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
