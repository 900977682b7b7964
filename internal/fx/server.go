package fx

import (
	"context"
	"time"

	"github.com/Fede-Barberis/Finance-Manager/config"
	"github.com/Fede-Barberis/Finance-Manager/internal/logger"
	"github.com/Fede-Barberis/Finance-Manager/internal/middleware"
	"github.com/Fede-Barberis/Finance-Manager/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// ServerModule provee la configuración del servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/register", handler.Register)
		public.POST("/auth/login", handler.Login)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		private.GET("/users/me", handler.GetMe)

		goals := private.Group("/goals")
		{
			goals.POST("", handler.CreateGoal)
			goals.GET("", handler.ListGoals)
			goals.GET("/filter/name", handler.FilterGoalsByName)
			goals.GET("/filter/state", handler.FilterGoalsByState)
			goals.GET("/:id", handler.GetGoal)
			goals.PATCH("/:id", handler.UpdateGoal)
			goals.DELETE("/:id", handler.DeleteGoal)

			goals.POST("/contribution", handler.AddContribution)
			goals.DELETE("/contribution/:goal_id/:nro_contribution", handler.DeleteContribution)
			goals.GET("/contribution/goal/:goal_id", handler.GetContributionsByGoal)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("No se pudo iniciar el servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor deteniéndose...")
			return nil
		},
	})
}
