package api

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CryptoDataPath is the route of the aggregated market data endpoint.
const CryptoDataPath = "/api/crypto-data"

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (CORS, RequestID, Logger, Recovery, ErrorHandler).
//   - Mounts Swagger docs (/swagger/*any).
//   - Mounts /api/crypto-data for every method, behind the JSON content type and the pre-flight short-circuit.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//   - No request timeout is added here: each upstream call carries its own deadline.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.CORS(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	data := router.Group(CryptoDataPath, middleware.JSONContent(), middleware.Preflight())
	{
		data.Any("", handler.GetCryptoData)
	}

	return router
}
