package service

import (
	"context"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/repository"
	"github.com/deppfellow/go-qa/internal/server"
)

type QuestionService struct {
	server *server.Server
	repo   repository.QuestionRepository
}

func NewQuestionService(s *server.Server, repo repository.QuestionRepository) *QuestionService {
	return &QuestionService{
		server: s,
		repo:   repo,
	}
}

func (qs *QuestionService) CreateQuestion(ctx context.Context, payload *model.CreateQuestionRequest) (*model.QuestionDetail, error) {
	logger := loggerFrom(ctx, qs.server)

	question, err := qs.repo.Create(ctx, payload.Question)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create question")
		return nil, err
	}

	logger.Info().
		Str("question_uuid", question.QuestionUUID.String()).
		Msg("question created")

	return &question, nil
}

// GetQuestions lists every question, or one page of them when the request
// carries a limit.
func (qs *QuestionService) GetQuestions(ctx context.Context, payload *model.ListQuestionsRequest) ([]model.QuestionDetail, error) {
	var (
		questions []model.QuestionDetail
		err       error
	)

	if page, ok := payload.Page(); ok {
		questions, err = qs.repo.ListPage(ctx, page)
	} else {
		questions, err = qs.repo.List(ctx)
	}
	if err != nil {
		loggerFrom(ctx, qs.server).Error().Err(err).Msg("failed to list questions")
		return nil, err
	}

	return questions, nil
}

func (qs *QuestionService) DeleteQuestion(ctx context.Context, payload *model.DeleteQuestionRequest) error {
	logger := loggerFrom(ctx, qs.server)

	if err := qs.repo.Delete(ctx, payload.QuestionUUID); err != nil {
		logger.Warn().Err(err).Str("question_uuid", payload.QuestionUUID).Msg("failed to delete question")
		return err
	}

	logger.Info().Str("question_uuid", payload.QuestionUUID).Msg("question deleted")
	return nil
}
