package router

import (
	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// Q&A resources: the root message, health, docs and static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Root.Index)

	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html.
	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
