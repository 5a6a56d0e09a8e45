package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/repository"
	"github.com/deppfellow/go-qa/internal/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func intPtr(v int) *int { return &v }

func newTestServices(t *testing.T) (*Services, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	svc, err := NewService(&server.Server{Logger: &logger}, repository.NewMemoryRepositories())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, &buf
}

func TestNewServiceRequiresRepositories(t *testing.T) {
	if _, err := NewService(&server.Server{}, nil); err == nil {
		t.Error("NewService(nil) should fail")
	}
	if _, err := NewService(&server.Server{}, &repository.Repositories{}); err == nil {
		t.Error("NewService(empty) should fail")
	}
}

func TestQuestionLifecycle(t *testing.T) {
	svc, logs := newTestServices(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		q, err := svc.Question.CreateQuestion(ctx, &model.CreateQuestionRequest{Question: model.Question{Title: title}})
		if err != nil {
			t.Fatalf("CreateQuestion(%q) error = %v", title, err)
		}
		if q.Title != title {
			t.Errorf("Title = %q, want %q", q.Title, title)
		}
	}
	if !strings.Contains(logs.String(), "question created") {
		t.Errorf("creation not logged: %s", logs.String())
	}

	all, err := svc.Question.GetQuestions(ctx, &model.ListQuestionsRequest{})
	if err != nil || len(all) != 3 {
		t.Fatalf("GetQuestions() = %d, %v; want 3 questions", len(all), err)
	}

	page, err := svc.Question.GetQuestions(ctx, &model.ListQuestionsRequest{
		PageRequest: model.PageRequest{Limit: intPtr(2), Offset: intPtr(2)},
	})
	if err != nil || len(page) != 1 {
		t.Fatalf("GetQuestions(paged) = %d, %v; want 1 question", len(page), err)
	}

	if err := svc.Question.DeleteQuestion(ctx, &model.DeleteQuestionRequest{QuestionUUID: all[0].QuestionUUID.String()}); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}

	err = svc.Question.DeleteQuestion(ctx, &model.DeleteQuestionRequest{QuestionUUID: "bad"})
	if !errors.Is(err, repository.ErrInvalidIdentifier) {
		t.Errorf("DeleteQuestion(bad) error = %v, want invalid identifier", err)
	}
}

func TestAnswerLifecycle(t *testing.T) {
	svc, logs := newTestServices(t)
	ctx := context.Background()

	q, err := svc.Question.CreateQuestion(ctx, &model.CreateQuestionRequest{Question: model.Question{Title: "q"}})
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}

	a, err := svc.Answer.CreateAnswer(ctx, &model.CreateAnswerRequest{Answer: model.Answer{
		QuestionUUID: q.QuestionUUID.String(),
		Content:      "an answer",
	}})
	if err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}

	answers, err := svc.Answer.GetAnswers(ctx, &model.ListAnswersRequest{QuestionUUID: q.QuestionUUID.String()})
	if err != nil || len(answers) != 1 || answers[0].AnswerUUID != a.AnswerUUID {
		t.Fatalf("GetAnswers() = %+v, %v", answers, err)
	}

	paged, err := svc.Answer.GetAnswers(ctx, &model.ListAnswersRequest{
		QuestionUUID: q.QuestionUUID.String(),
		PageRequest:  model.PageRequest{Limit: intPtr(1), Offset: intPtr(1)},
	})
	if err != nil || len(paged) != 0 {
		t.Fatalf("GetAnswers(second page) = %+v, %v", paged, err)
	}

	if err := svc.Answer.DeleteAnswer(ctx, &model.DeleteAnswerRequest{AnswerUUID: a.AnswerUUID.String()}); err != nil {
		t.Fatalf("DeleteAnswer() error = %v", err)
	}
	if !strings.Contains(logs.String(), "answer deleted") {
		t.Errorf("deletion not logged: %s", logs.String())
	}
}

func TestCreateAnswerUnknownQuestion(t *testing.T) {
	svc, logs := newTestServices(t)

	_, err := svc.Answer.CreateAnswer(context.Background(), &model.CreateAnswerRequest{Answer: model.Answer{
		QuestionUUID: uuid.NewString(),
		Content:      "orphan",
	}})
	if !errors.Is(err, repository.ErrInvalidIdentifier) {
		t.Fatalf("CreateAnswer() error = %v, want invalid identifier", err)
	}
	if !strings.Contains(logs.String(), `"level":"warn"`) {
		t.Errorf("client error should be logged at warn: %s", logs.String())
	}
}

func TestLoggerFromPrefersRequestLogger(t *testing.T) {
	var serverBuf, requestBuf bytes.Buffer
	serverLogger := zerolog.New(&serverBuf)
	requestLogger := zerolog.New(&requestBuf)

	s := &server.Server{Logger: &serverLogger}

	loggerFrom(requestLogger.WithContext(context.Background()), s).Info().Msg("in request")
	loggerFrom(context.Background(), s).Info().Msg("outside request")
	loggerFrom(context.Background(), nil).Info().Msg("dropped")

	if !strings.Contains(requestBuf.String(), "in request") {
		t.Errorf("request logger output = %q", requestBuf.String())
	}
	if !strings.Contains(serverBuf.String(), "outside request") {
		t.Errorf("server logger output = %q", serverBuf.String())
	}
	if strings.Contains(serverBuf.String(), "in request") {
		t.Error("request log leaked into server logger")
	}
}
