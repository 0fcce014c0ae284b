package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/repository/repositorytest"
	"github.com/google/uuid"
)

func newServices() (*QuestionService, *AnswerService) {
	store := repositorytest.NewMemoryStore()
	return NewQuestionService(store, store), NewAnswerService(store, store)
}

func wantStatus(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v (%T), want *errs.HTTPError", err, err)
	}
	if httpErr.Status != status {
		t.Fatalf("status = %d, want %d", httpErr.Status, status)
	}
	if message != "" && httpErr.Message != message {
		t.Fatalf("message = %q, want %q", httpErr.Message, message)
	}
}

func TestQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	questions, answers := newServices()

	q, err := questions.CreateQuestion(ctx, &model.CreateQuestionPayload{Text: "What is 2+2?"})
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}

	got, err := questions.GetQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if got.Answers == nil || len(got.Answers) != 0 {
		t.Fatalf("new question answers = %#v, want empty slice", got.Answers)
	}

	a, err := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: q.ID, Text: "4", UserID: "alice"})
	if err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}

	got, _ = questions.GetQuestion(ctx, q.ID)
	if len(got.Answers) != 1 || got.Answers[0].ID != a.ID {
		t.Fatalf("answers = %+v, want the created answer", got.Answers)
	}

	if err := questions.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}
	_, err = questions.GetQuestion(ctx, q.ID)
	wantStatus(t, err, http.StatusNotFound, "Question not found")
	_, err = answers.GetAnswer(ctx, a.ID)
	wantStatus(t, err, http.StatusNotFound, "Answer not found")

	wantStatus(t, questions.DeleteQuestion(ctx, q.ID), http.StatusNotFound, "Question not found")
}

func TestListQuestionsPaging(t *testing.T) {
	ctx := context.Background()
	questions, _ := newServices()

	list, err := questions.ListQuestions(ctx, &model.ListQuestionsPayload{Skip: 0, Limit: 100})
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("ListQuestions() on empty store = %#v, %v", list, err)
	}

	for _, text := range []string{"a", "b", "c"} {
		if _, err := questions.CreateQuestion(ctx, &model.CreateQuestionPayload{Text: text}); err != nil {
			t.Fatal(err)
		}
	}

	list, _ = questions.ListQuestions(ctx, &model.ListQuestionsPayload{Skip: 1, Limit: 1})
	if len(list) != 1 || list[0].Text != "b" {
		t.Fatalf("page = %+v, want [b]", list)
	}
}

func TestCreateAnswer(t *testing.T) {
	ctx := context.Background()
	questions, answers := newServices()

	_, err := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: 999, Text: "x"})
	wantStatus(t, err, http.StatusNotFound, "Question not found")

	q, _ := questions.CreateQuestion(ctx, &model.CreateQuestionPayload{Text: "q"})

	first, err := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: q.ID, Text: "one"})
	if err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}
	second, _ := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: q.ID, Text: "two"})

	if _, err := uuid.Parse(first.UserID); err != nil {
		t.Fatalf("generated user_id %q is not a UUID: %v", first.UserID, err)
	}
	if first.UserID == second.UserID {
		t.Fatalf("generated user ids should differ, both %q", first.UserID)
	}

	named, _ := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: q.ID, Text: "three", UserID: "bob"})
	if named.UserID != "bob" {
		t.Fatalf("user_id = %q, want bob", named.UserID)
	}
}

func TestDeleteAnswer(t *testing.T) {
	ctx := context.Background()
	questions, answers := newServices()

	q, _ := questions.CreateQuestion(ctx, &model.CreateQuestionPayload{Text: "q"})
	a, _ := answers.CreateAnswer(ctx, &model.CreateAnswerPayload{QuestionID: q.ID, Text: "a"})

	if err := answers.DeleteAnswer(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAnswer() error = %v", err)
	}
	wantStatus(t, answers.DeleteAnswer(ctx, a.ID), http.StatusNotFound, "Answer not found")

	if _, err := questions.GetQuestion(ctx, q.ID); err != nil {
		t.Fatalf("question should survive answer deletion: %v", err)
	}
}

// racingStore reports the question as present but fails the insert the
// way Postgres does when the question is deleted in between.
type racingStore struct {
	*repositorytest.MemoryStore
}

func (r racingStore) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	return &model.Question{ID: id, Text: "gone soon"}, nil
}

func TestCreateAnswerForeignKeyRace(t *testing.T) {
	store := racingStore{repositorytest.NewMemoryStore()}
	answers := NewAnswerService(store, store)

	_, err := answers.CreateAnswer(context.Background(), &model.CreateAnswerPayload{QuestionID: 7, Text: "late"})
	wantStatus(t, err, http.StatusNotFound, "Question not found")
}

type brokenStore struct {
	*repositorytest.MemoryStore
}

func (brokenStore) ListQuestions(context.Context, int, int) ([]model.Question, error) {
	return nil, errors.New("connection reset by peer")
}

func (brokenStore) DeleteQuestion(context.Context, int64) error {
	return errors.New("commit transaction: connection reset by peer")
}

func TestStorageFailuresAreHidden(t *testing.T) {
	ctx := context.Background()
	store := brokenStore{repositorytest.NewMemoryStore()}
	questions := NewQuestionService(store, store)

	_, err := questions.ListQuestions(ctx, &model.ListQuestionsPayload{Limit: 10})
	wantStatus(t, err, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

	err = questions.DeleteQuestion(ctx, 1)
	wantStatus(t, err, http.StatusInternalServerError, "")
}
