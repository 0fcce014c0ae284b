package model

import (
	"time"

	"github.com/deppfellow/qna-api/internal/validation"
)

// Question is a row of the questions table.
type Question struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// QuestionWithAnswers is a question together with every answer attached to it.
type QuestionWithAnswers struct {
	Question
	Answers []Answer `json:"answers"`
}

// DefaultListLimit is the page size used when no limit is given.
const DefaultListLimit = 100

// ListQuestionsPayload carries the offset/limit window of GET /questions.
type ListQuestionsPayload struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0"`
}

func (p *ListQuestionsPayload) SetDefaults() {
	p.Skip = 0
	p.Limit = DefaultListLimit
}

func (p *ListQuestionsPayload) Validate() error {
	return validation.Struct(p)
}

// CreateQuestionPayload is the body of POST /questions.
type CreateQuestionPayload struct {
	Text string `json:"text" validate:"required"`
}

func (p *CreateQuestionPayload) Validate() error {
	return validation.Struct(p)
}

// QuestionIDPayload addresses a single question by its path id.
type QuestionIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *QuestionIDPayload) Validate() error {
	return validation.Struct(p)
}
