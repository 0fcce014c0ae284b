package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const answersTable = "answers"

type AnswerRepository struct {
	pool *pgxpool.Pool
}

func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// CreateAnswer inserts an answer. A missing parent question surfaces as
// a foreign key violation from Postgres.
func (r *AnswerRepository) CreateAnswer(ctx context.Context, questionID int64, userID, text string) (*model.Answer, error) {
	const query = `
	INSERT INTO answers (question_id, user_id, text)
	VALUES ($1, $2, $3)
	RETURNING id, question_id, user_id, text, created_at;
	`
	rows, err := r.pool.Query(ctx, query, questionID, userID, text)
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	answer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Answer])
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

func (r *AnswerRepository) GetAnswer(ctx context.Context, id int64) (*model.Answer, error) {
	const query = `
	SELECT id, question_id, user_id, text, created_at
	FROM answers
	WHERE id = $1;
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get answer: %w", err)
	}

	answer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Answer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(answersTable, id)
		}
		return nil, fmt.Errorf("get answer: %w", err)
	}
	return answer, nil
}

func (r *AnswerRepository) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	const query = `
	SELECT id, question_id, user_id, text, created_at
	FROM answers
	WHERE question_id = $1
	ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	answers, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Answer])
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

func (r *AnswerRepository) DeleteAnswer(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete answer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound(answersTable, id)
	}
	return nil
}
