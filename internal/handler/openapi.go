package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the interactive API documentation.
//
// static/openapi.html loads the viewer from a CDN and points it at
// static/openapi.json, which the router serves as a static file.
type OpenAPIHandler struct {
	Handler
	uiPath string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		uiPath:  "static/openapi.html",
	}
}

// ServeOpenAPIUI serves the docs page with caching disabled so edits to
// the description show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	templateBytes, err := os.ReadFile(h.uiPath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
