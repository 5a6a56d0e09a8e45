package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/google/uuid"
)

// MemoryStore keeps questions and answers in process memory.
//
// It follows the same contract as the Postgres repositories, including the
// foreign key check on answer creation and the cascade on question
// deletion. Listing returns insertion order.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []model.QuestionDetail
	answers   []model.AnswerDetail

	now   func() time.Time
	newID func() uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
}

// Questions returns a QuestionRepository backed by the store.
func (s *MemoryStore) Questions() QuestionRepository {
	return memoryQuestions{s}
}

// Answers returns an AnswerRepository backed by the store.
func (s *MemoryStore) Answers() AnswerRepository {
	return memoryAnswers{s}
}

type memoryQuestions struct{ s *MemoryStore }

func (m memoryQuestions) Create(ctx context.Context, question model.Question) (model.QuestionDetail, error) {
	if err := ctx.Err(); err != nil {
		return model.QuestionDetail{}, other("create question", err)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	out := model.QuestionDetail{
		QuestionUUID: m.s.newID(),
		Title:        question.Title,
		Description:  question.Description,
		CreatedAt:    m.s.now(),
	}
	m.s.questions = append(m.s.questions, out)
	return out, nil
}

func (m memoryQuestions) List(ctx context.Context) ([]model.QuestionDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, other("list questions", err)
	}

	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return append([]model.QuestionDetail{}, m.s.questions...), nil
}

func (m memoryQuestions) ListPage(ctx context.Context, page model.Page) ([]model.QuestionDetail, error) {
	if err := page.Validate(); err != nil {
		return nil, other("list questions", err)
	}

	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(all, func(a, b model.QuestionDetail) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareUUID(a.QuestionUUID, b.QuestionUUID)
	})
	return window(all, page), nil
}

func (m memoryQuestions) Delete(ctx context.Context, questionUUID string) error {
	id, err := parseIdentifier("question_uuid", questionUUID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return other("delete question", err)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.questions = slices.DeleteFunc(m.s.questions, func(q model.QuestionDetail) bool {
		return q.QuestionUUID.String() == id
	})
	m.s.answers = slices.DeleteFunc(m.s.answers, func(a model.AnswerDetail) bool {
		return a.QuestionUUID.String() == id
	})
	return nil
}

type memoryAnswers struct{ s *MemoryStore }

func (m memoryAnswers) Create(ctx context.Context, answer model.Answer) (model.AnswerDetail, error) {
	questionID, err := parseIdentifier("question_uuid", answer.QuestionUUID)
	if err != nil {
		return model.AnswerDetail{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.AnswerDetail{}, other("create answer", err)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	idx := slices.IndexFunc(m.s.questions, func(q model.QuestionDetail) bool {
		return q.QuestionUUID.String() == questionID
	})
	if idx < 0 {
		return model.AnswerDetail{}, invalidIdentifier(
			fmt.Sprintf("Invalid question UUID: %s", answer.QuestionUUID), nil)
	}

	out := model.AnswerDetail{
		AnswerUUID:   m.s.newID(),
		QuestionUUID: m.s.questions[idx].QuestionUUID,
		Content:      answer.Content,
		CreatedAt:    m.s.now(),
	}
	m.s.answers = append(m.s.answers, out)
	return out, nil
}

func (m memoryAnswers) ListByQuestion(ctx context.Context, questionUUID string) ([]model.AnswerDetail, error) {
	questionID, err := parseIdentifier("question_uuid", questionUUID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, other("list answers", err)
	}

	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := []model.AnswerDetail{}
	for _, a := range m.s.answers {
		if a.QuestionUUID.String() == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memoryAnswers) ListPageByQuestion(ctx context.Context, questionUUID string, page model.Page) ([]model.AnswerDetail, error) {
	all, err := m.ListByQuestion(ctx, questionUUID)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, other("list answers", err)
	}

	slices.SortStableFunc(all, func(a, b model.AnswerDetail) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareUUID(a.AnswerUUID, b.AnswerUUID)
	})
	return window(all, page), nil
}

func (m memoryAnswers) Delete(ctx context.Context, answerUUID string) error {
	id, err := parseIdentifier("answer_uuid", answerUUID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return other("delete answer", err)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.answers = slices.DeleteFunc(m.s.answers, func(a model.AnswerDetail) bool {
		return a.AnswerUUID.String() == id
	})
	return nil
}

// compareUUID orders identifiers bytewise, as Postgres does.
func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}

// window slices out the rows selected by page, never returning nil.
func window[T any](rows []T, page model.Page) []T {
	if page.Offset >= len(rows) {
		return []T{}
	}
	end := min(page.Offset+page.Limit, len(rows))
	return rows[page.Offset:end]
}
