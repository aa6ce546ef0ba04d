package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lotodata/megasena-backend/internal/config"
	"github.com/lotodata/megasena-backend/internal/handlers"
	"github.com/lotodata/megasena-backend/internal/middleware"
	"go.uber.org/zap"
)

// SetupRouter configures the HTTP routes.
func SetupRouter(
	cfg *config.Config,
	megasena *handlers.MegasenaHandler,
	auth *handlers.AuthHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", megasena.Health)
	router.POST("/auth/token", auth.IssueToken)

	megasenaGroup := router.Group("/megasena")
	{
		megasenaGroup.GET("", megasena.GetScrapeResult)
		megasenaGroup.GET("/api", megasena.GetDrawFromAPI)
		megasenaGroup.GET("/estatisticas", megasena.GetStatistics)
		megasenaGroup.GET("/historico", megasena.GetHistory)
		megasenaGroup.GET("/ultimos_sorteios", megasena.GetLatestDraws)

		importRoute := megasenaGroup.Group("")
		if cfg.JWT.Secret != "" {
			importRoute.Use(middleware.JWTAuthMiddleware(cfg))
		}
		importRoute.POST("/importar", megasena.ImportDraws)
	}

	return router
}
