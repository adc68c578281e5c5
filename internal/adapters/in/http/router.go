package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	// RequestTimeout bounds every API request; zero disables the limit.
	RequestTimeout time.Duration
	Debug          bool
}

// NewRouter assembles the echo instance: shared middleware, the order API
// under /api, health, metrics and the swagger UI.
func NewRouter(
	ctx context.Context,
	cfg RouterConfig,
	server *Server,
	resolver ports.ActorResolver,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Logger.SetLevel(log.WARN)
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	}
	e.HTTPErrorHandler = NewErrorHandler(logger)

	metrics := NewMetrics()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORS())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Skipper: func(c echo.Context) bool { return c.IsWebSocket() },
			Timeout: cfg.RequestTimeout,
		}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	server.RegisterRoutes(e.Group("/api"), resolver, validator)
	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request failed",
					slog.Group("request", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
