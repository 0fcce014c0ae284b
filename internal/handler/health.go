package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/qna-api/internal/config"
	"github.com/deppfellow/qna-api/internal/middleware"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the service and its dependencies are
// reachable, for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth pings the configured dependencies.
//
// The database is required: a failed ping turns the response into 503.
// Redis only backs the rate limiter, so its failure is reported in the
// checks map but the service stays healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}
	timeout := obs.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	checks := make(map[string]interface{})
	isHealthy := true

	if h.server.DB != nil && obs.HealthCheckEnabled("database") {
		if !h.check(c.Request().Context(), logger, checks, "database", timeout, h.server.DB.Pool.Ping) {
			isHealthy = false
		}
	}

	if h.server.Redis != nil && obs.HealthCheckEnabled("redis") {
		h.check(c.Request().Context(), logger, checks, "redis", timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// check runs one ping with its own timeout and records the result in checks.
func (h *HealthHandler) check(
	parent context.Context,
	logger zerolog.Logger,
	checks map[string]interface{},
	name string,
	timeout time.Duration,
	ping func(ctx context.Context) error,
) bool {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return true
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}
