package service

import (
	"github.com/deppfellow/qna-api/internal/repository"
)

type Services struct {
	Questions *QuestionService
	Answers   *AnswerService
}

func NewService(repos *repository.Repositories) *Services {
	return &Services{
		Questions: NewQuestionService(repos.Questions, repos.Answers),
		Answers:   NewAnswerService(repos.Questions, repos.Answers),
	}
}
