package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/qna-api/internal/database"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const questionsTable = "questions"

type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) ListQuestions(ctx context.Context, skip, limit int) ([]model.Question, error) {
	const query = `
	SELECT id, text, created_at
	FROM questions
	ORDER BY id
	LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	questions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Question])
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionRepository) CreateQuestion(ctx context.Context, text string) (*model.Question, error) {
	const query = `
	INSERT INTO questions (text)
	VALUES ($1)
	RETURNING id, text, created_at;
	`
	rows, err := r.pool.Query(ctx, query, text)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Question])
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

func (r *QuestionRepository) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	const query = `
	SELECT id, text, created_at
	FROM questions
	WHERE id = $1;
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	question, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Question])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(questionsTable, id)
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return question, nil
}

// DeleteQuestion removes the question and its answers in one transaction.
//
// Answers are deleted by an explicit statement before the question; the
// ON DELETE CASCADE foreign key would remove them too. Any failure rolls
// back both statements.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check question: %w", err)
		}
		if !exists {
			return sqlerr.NotFound(questionsTable, id)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM answers WHERE question_id = $1`, id); err != nil {
			return fmt.Errorf("delete answers of question %d: %w", id, err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete question %d: %w", id, err)
		}
		// A concurrent delete may have won between the check and here.
		if tag.RowsAffected() == 0 {
			return sqlerr.NotFound(questionsTable, id)
		}
		return nil
	})
}
