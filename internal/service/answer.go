package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/google/uuid"
)

// AnswerRepository is the storage the answer service needs.
type AnswerRepository interface {
	CreateAnswer(ctx context.Context, questionID int64, userID, text string) (*model.Answer, error)
	GetAnswer(ctx context.Context, id int64) (*model.Answer, error)
	ListAnswersByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error)
	DeleteAnswer(ctx context.Context, id int64) error
}

type AnswerService struct {
	questions QuestionRepository
	answers   AnswerRepository
}

func NewAnswerService(questions QuestionRepository, answers AnswerRepository) *AnswerService {
	return &AnswerService{questions: questions, answers: answers}
}

// CreateAnswer attaches a new answer to an existing question.
//
// A blank user id is replaced by a random UUID. If the question is
// deleted between the existence check and the insert, the foreign key
// violation is reported as the same 404 as a missing question.
func (s *AnswerService) CreateAnswer(ctx context.Context, payload *model.CreateAnswerPayload) (*model.Answer, error) {
	if _, err := s.questions.GetQuestion(ctx, payload.QuestionID); err != nil {
		return nil, translate(ctx, "get question", err)
	}

	userID := payload.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	answer, err := s.answers.CreateAnswer(ctx, payload.QuestionID, userID, payload.Text)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
			return nil, errs.NewNotFoundError("Question not found", true, nil)
		}
		return nil, translate(ctx, "create answer", err)
	}
	return answer, nil
}

func (s *AnswerService) GetAnswer(ctx context.Context, id int64) (*model.Answer, error) {
	answer, err := s.answers.GetAnswer(ctx, id)
	if err != nil {
		return nil, translate(ctx, "get answer", err)
	}
	return answer, nil
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, id int64) error {
	if err := s.answers.DeleteAnswer(ctx, id); err != nil {
		return translate(ctx, "delete answer", err)
	}
	return nil
}
