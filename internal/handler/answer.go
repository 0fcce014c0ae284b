package handler

import (
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AnswerHandler struct {
	Handler
	answers *service.AnswerService
}

func NewAnswerHandler(s *server.Server, answers *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		Handler: NewHandler(s),
		answers: answers,
	}
}

// CreateAnswer takes the question id from the path and text/user_id from
// the body.
func (h *AnswerHandler) CreateAnswer(c echo.Context, req *model.CreateAnswerPayload) (*model.Answer, error) {
	return h.answers.CreateAnswer(c.Request().Context(), req)
}

func (h *AnswerHandler) GetAnswer(c echo.Context, req *model.AnswerIDPayload) (*model.Answer, error) {
	return h.answers.GetAnswer(c.Request().Context(), req.ID)
}

func (h *AnswerHandler) DeleteAnswer(c echo.Context, req *model.AnswerIDPayload) (*model.Message, error) {
	if err := h.answers.DeleteAnswer(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.Message{Message: "Answer deleted successfully"}, nil
}
