package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/model"
)

// QuestionRepository is the storage the question service needs.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, skip, limit int) ([]model.Question, error)
	CreateQuestion(ctx context.Context, text string) (*model.Question, error)
	GetQuestion(ctx context.Context, id int64) (*model.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

type QuestionService struct {
	questions QuestionRepository
	answers   AnswerRepository
}

func NewQuestionService(questions QuestionRepository, answers AnswerRepository) *QuestionService {
	return &QuestionService{questions: questions, answers: answers}
}

// ListQuestions returns one page of questions ordered by id.
func (s *QuestionService) ListQuestions(ctx context.Context, payload *model.ListQuestionsPayload) ([]model.Question, error) {
	questions, err := s.questions.ListQuestions(ctx, payload.Skip, payload.Limit)
	if err != nil {
		return nil, translate(ctx, "list questions", err)
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, payload *model.CreateQuestionPayload) (*model.Question, error) {
	question, err := s.questions.CreateQuestion(ctx, payload.Text)
	if err != nil {
		return nil, translate(ctx, "create question", err)
	}
	return question, nil
}

// GetQuestion returns the question together with all of its answers.
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*model.QuestionWithAnswers, error) {
	question, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		return nil, translate(ctx, "get question", err)
	}

	answers, err := s.answers.ListAnswersByQuestion(ctx, id)
	if err != nil {
		return nil, translate(ctx, "list answers", err)
	}
	if answers == nil {
		answers = []model.Answer{}
	}

	return &model.QuestionWithAnswers{Question: *question, Answers: answers}, nil
}

// DeleteQuestion removes the question and every answer attached to it.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return translate(ctx, "delete question", err)
	}
	return nil
}
