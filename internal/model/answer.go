package model

import (
	"time"

	"github.com/deppfellow/qna-api/internal/validation"
)

// Answer is a row of the answers table.
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"question_id" db:"question_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateAnswerPayload is the request of POST /questions/:id/answers.
//
// UserID is optional; an empty value is replaced with a generated id.
type CreateAnswerPayload struct {
	QuestionID int64  `param:"id" json:"-"`
	Text       string `json:"text" validate:"required"`
	UserID     string `json:"user_id"`
}

func (p *CreateAnswerPayload) Validate() error {
	return validation.Struct(p)
}

// AnswerIDPayload addresses a single answer by its path id.
type AnswerIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *AnswerIDPayload) Validate() error {
	return validation.Struct(p)
}
