package router

import (
	"net/http"

	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerAnswerRoutes(r *echo.Echo, h *handler.Handlers) {
	answers := r.Group("/answers")

	answers.GET("/:id", handler.Handle(h.Answers.Handler, h.Answers.GetAnswer, http.StatusOK))
	answers.DELETE("/:id", handler.Handle(h.Answers.Handler, h.Answers.DeleteAnswer, http.StatusOK))
}
