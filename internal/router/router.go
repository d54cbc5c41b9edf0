package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/handler"
	"fitbuddy/backend/internal/metrics"
	"fitbuddy/backend/internal/middleware"
	"fitbuddy/backend/internal/service"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Exercise *handler.ExerciseHandler
	Tools    *handler.ToolsHandler
	Tracker  *handler.TrackerHandler
}

type Options struct {
	CORSOrigins []string
	Logger      zerolog.Logger
	Recorder    metrics.Recorder
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

func New(authService *service.AuthService, h Handlers, opts Options) *gin.Engine {
	if opts.Recorder == nil {
		opts.Recorder = metrics.Noop{}
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestLogger(opts.Logger),
		gin.Recovery(),
		middleware.Metrics(opts.Recorder),
		middleware.CORS(opts.CORSOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", middleware.Auth(authService), h.Auth.Me)

	exercises := api.Group("/exercises")
	exercises.GET("", h.Exercise.List)
	exercises.GET("/categories", h.Exercise.Categories)
	exercises.GET("/:id", h.Exercise.Get)
	api.GET("/tips/daily", h.Exercise.DailyTip)

	tools := api.Group("/tools")
	tools.POST("/calories", h.Tools.Calories)
	tools.POST("/bmi", h.Tools.BMI)

	favorites := api.Group("/favorites")
	favorites.Use(middleware.Auth(authService))
	favorites.GET("", h.Tracker.Favorites)
	favorites.POST("/toggle", h.Tracker.ToggleFavorite)

	history := api.Group("/history")
	history.Use(middleware.Auth(authService))
	history.GET("", h.Tracker.History)
	history.POST("", h.Tracker.LogWorkout)
	history.POST("/complete", h.Tracker.CompleteWorkout)
	history.DELETE("", h.Tracker.ClearHistory)

	water := api.Group("/water")
	water.Use(middleware.Auth(authService))
	water.GET("", h.Tracker.Water)
	water.POST("/add", h.Tracker.AddWater)
	water.POST("/reset", h.Tracker.ResetWater)
	water.PUT("/goal", h.Tracker.SetWaterGoal)

	return engine
}
