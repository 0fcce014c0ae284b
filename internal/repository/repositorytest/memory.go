// Package repositorytest provides an in-memory stand-in for the
// PostgreSQL repositories, for tests that exercise services and routes
// without a database.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	questionsTable = "questions"
	answersTable   = "answers"
)

// MemoryStore keeps questions and answers in process memory.
//
// It mirrors the PostgreSQL repositories closely enough to stand in for
// them: ids are assigned from 1 in insertion order, lookups return
// sqlerr.NotFound, creating an answer for a missing question fails with a
// foreign key violation, and deleting a question removes its answers.
type MemoryStore struct {
	mu           sync.RWMutex
	questions    map[int64]model.Question
	answers      map[int64]model.Answer
	nextQuestion int64
	nextAnswer   int64
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions: make(map[int64]model.Question),
		answers:   make(map[int64]model.Answer),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) ListQuestions(_ context.Context, skip, limit int) ([]model.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]model.Question, 0, len(m.questions))
	for _, q := range m.questions {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if skip >= len(all) {
		return []model.Question{}, nil
	}
	end := len(all)
	if limit >= 0 && limit < end-skip {
		end = skip + limit
	}
	return all[skip:end], nil
}

func (m *MemoryStore) CreateQuestion(_ context.Context, text string) (*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextQuestion++
	q := model.Question{ID: m.nextQuestion, Text: text, CreatedAt: m.now()}
	m.questions[q.ID] = q
	return &q, nil
}

func (m *MemoryStore) GetQuestion(_ context.Context, id int64) (*model.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[id]
	if !ok {
		return nil, sqlerr.NotFound(questionsTable, id)
	}
	return &q, nil
}

func (m *MemoryStore) DeleteQuestion(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return sqlerr.NotFound(questionsTable, id)
	}
	for answerID, a := range m.answers {
		if a.QuestionID == id {
			delete(m.answers, answerID)
		}
	}
	delete(m.questions, id)
	return nil
}

func (m *MemoryStore) CreateAnswer(_ context.Context, questionID int64, userID, text string) (*model.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[questionID]; !ok {
		return nil, &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23503",
			Message:        `insert or update on table "answers" violates foreign key constraint "answers_question_id_fkey"`,
			TableName:      answersTable,
			ColumnName:     "question_id",
			ConstraintName: "answers_question_id_fkey",
		}
	}

	m.nextAnswer++
	a := model.Answer{
		ID:         m.nextAnswer,
		QuestionID: questionID,
		UserID:     userID,
		Text:       text,
		CreatedAt:  m.now(),
	}
	m.answers[a.ID] = a
	return &a, nil
}

func (m *MemoryStore) GetAnswer(_ context.Context, id int64) (*model.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.answers[id]
	if !ok {
		return nil, sqlerr.NotFound(answersTable, id)
	}
	return &a, nil
}

func (m *MemoryStore) ListAnswersByQuestion(_ context.Context, questionID int64) ([]model.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	answers := []model.Answer{}
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			answers = append(answers, a)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers, nil
}

func (m *MemoryStore) DeleteAnswer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.answers[id]; !ok {
		return sqlerr.NotFound(answersTable, id)
	}
	delete(m.answers, id)
	return nil
}
