package repository

import (
	"github.com/deppfellow/qna-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Questions *QuestionRepository
	Answers   *AnswerRepository
}

// NewRepositories builds the PostgreSQL repositories on top of the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Questions: NewQuestionRepository(s.DB.Pool),
		Answers:   NewAnswerRepository(s.DB.Pool),
	}
}
