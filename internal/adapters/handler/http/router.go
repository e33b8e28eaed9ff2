package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-insights/docs"
	"github.com/comitanigiacomo/kanso-insights/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
)

// RateLimits are per client IP per minute. AI routes get their own, smaller
// budget since every request costs a provider call.
type RateLimits struct {
	API int
	AI  int
}

func DefaultRateLimits() RateLimits {
	return RateLimits{API: 100, AI: 10}
}

type RouterDependencies struct {
	HabitHandler    *HabitHandler
	RecordHandler   *RecordHandler
	StatsHandler    *StatsHandler
	InsightsHandler *InsightsHandler
	AnalysisHandler *AnalysisHandler

	// TokenService enables bearer auth on /api/v1 when set.
	TokenService *services.TokenService
	DB           *sqlx.DB
	Redis        *redis.Client
	RateLimits   RateLimits
	// AIState reports the circuit breaker state on /health.
	AIState   func() string
	StartTime time.Time
	Logger    *slog.Logger
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.TokenService != nil {
		apiV1.Use(middleware.AuthMiddleware(deps.TokenService))
	}

	api := apiV1.Group("")
	aiGroup := apiV1.Group("")
	if deps.Redis != nil {
		limits := deps.RateLimits
		if limits.API == 0 || limits.AI == 0 {
			limits = DefaultRateLimits()
		}
		api.Use(middleware.RateLimiterMiddleware(deps.Redis, "api", limits.API, time.Minute, deps.Logger))
		aiGroup.Use(middleware.RateLimiterMiddleware(deps.Redis, "ai", limits.AI, time.Minute, deps.Logger))
	}

	if deps.HabitHandler != nil {
		deps.HabitHandler.RegisterRoutes(api)
	}
	if deps.RecordHandler != nil {
		deps.RecordHandler.RegisterRoutes(api)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterRoutes(api)
	}
	if deps.InsightsHandler != nil {
		deps.InsightsHandler.RegisterRoutes(api, aiGroup)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(aiGroup)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "connected"
		if deps.DB == nil || deps.DB.PingContext(ctx) != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(ctx).Err() != nil {
				redisStatus = "unreachable"
			}
		}

		body := gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		}
		if deps.AIState != nil {
			body["ai"] = deps.AIState()
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		c.JSON(statusCode, body)
	}
}
