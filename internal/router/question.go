package router

import (
	"net/http"

	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerQuestionRoutes(r *echo.Echo, h *handler.Handlers) {
	questions := r.Group("/questions")

	questions.GET("", handler.Handle(h.Questions.Handler, h.Questions.ListQuestions, http.StatusOK))
	questions.POST("", handler.Handle(h.Questions.Handler, h.Questions.CreateQuestion, http.StatusOK))
	questions.GET("/:id", handler.Handle(h.Questions.Handler, h.Questions.GetQuestion, http.StatusOK))
	questions.DELETE("/:id", handler.Handle(h.Questions.Handler, h.Questions.DeleteQuestion, http.StatusOK))

	questions.POST("/:id/answers", handler.Handle(h.Answers.Handler, h.Answers.CreateAnswer, http.StatusOK))
}
