package handler

import (
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
)

type QuestionHandler struct {
	Handler
	questions *service.QuestionService
}

func NewQuestionHandler(s *server.Server, questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		Handler:   NewHandler(s),
		questions: questions,
	}
}

func (h *QuestionHandler) ListQuestions(c echo.Context, req *model.ListQuestionsPayload) ([]model.Question, error) {
	return h.questions.ListQuestions(c.Request().Context(), req)
}

func (h *QuestionHandler) CreateQuestion(c echo.Context, req *model.CreateQuestionPayload) (*model.Question, error) {
	return h.questions.CreateQuestion(c.Request().Context(), req)
}

func (h *QuestionHandler) GetQuestion(c echo.Context, req *model.QuestionIDPayload) (*model.QuestionWithAnswers, error) {
	return h.questions.GetQuestion(c.Request().Context(), req.ID)
}

func (h *QuestionHandler) DeleteQuestion(c echo.Context, req *model.QuestionIDPayload) (*model.Message, error) {
	if err := h.questions.DeleteQuestion(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.Message{Message: "Question and its answers deleted successfully"}, nil
}
