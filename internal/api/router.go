package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the echo instance with all routes registered.
func NewRouter(h *Handler, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.GET("/health", h.Health)

	api := e.Group("/api")

	recs := api.Group("/recommendations")
	recs.GET("", h.ListRecommendations)
	recs.POST("/generate", h.Generate)
	recs.GET("/export", h.Export)
	recs.PATCH("/:id", h.UpdateStatus)

	api.GET("/gauges", h.Gauges)
	api.GET("/summary", h.Summary)
	api.GET("/metrics", h.Metrics)

	api.GET("/chat/messages", h.ChatMessages)
	api.POST("/chat/messages", h.SendChat)

	api.GET("/preferences", h.GetPreferences)
	api.PUT("/preferences", h.PutPreferences)

	return e
}
