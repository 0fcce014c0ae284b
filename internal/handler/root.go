package handler

import (
	"net/http"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
)

type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{Handler: NewHandler(s)}
}

// Index is a liveness message that touches no dependency.
func (h *RootHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Message{Message: "Q&A API is running"})
}
