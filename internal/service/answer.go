package service

import (
	"context"
	"errors"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/repository"
	"github.com/deppfellow/go-qa/internal/server"
)

type AnswerService struct {
	server *server.Server
	repo   repository.AnswerRepository
}

func NewAnswerService(s *server.Server, repo repository.AnswerRepository) *AnswerService {
	return &AnswerService{
		server: s,
		repo:   repo,
	}
}

func (as *AnswerService) CreateAnswer(ctx context.Context, payload *model.CreateAnswerRequest) (*model.AnswerDetail, error) {
	logger := loggerFrom(ctx, as.server)

	answer, err := as.repo.Create(ctx, payload.Answer)
	if err != nil {
		// Unknown or malformed question identifiers are client mistakes.
		if errors.Is(err, repository.ErrInvalidIdentifier) {
			logger.Warn().Err(err).Str("question_uuid", payload.QuestionUUID).Msg("answer rejected")
		} else {
			logger.Error().Err(err).Msg("failed to create answer")
		}
		return nil, err
	}

	logger.Info().
		Str("answer_uuid", answer.AnswerUUID.String()).
		Str("question_uuid", answer.QuestionUUID.String()).
		Msg("answer created")

	return &answer, nil
}

// GetAnswers lists the answers of one question, paged when the request
// carries a limit.
func (as *AnswerService) GetAnswers(ctx context.Context, payload *model.ListAnswersRequest) ([]model.AnswerDetail, error) {
	var (
		answers []model.AnswerDetail
		err     error
	)

	if page, ok := payload.Page(); ok {
		answers, err = as.repo.ListPageByQuestion(ctx, payload.QuestionUUID, page)
	} else {
		answers, err = as.repo.ListByQuestion(ctx, payload.QuestionUUID)
	}
	if err != nil {
		loggerFrom(ctx, as.server).Error().Err(err).Str("question_uuid", payload.QuestionUUID).Msg("failed to list answers")
		return nil, err
	}

	return answers, nil
}

func (as *AnswerService) DeleteAnswer(ctx context.Context, payload *model.DeleteAnswerRequest) error {
	logger := loggerFrom(ctx, as.server)

	if err := as.repo.Delete(ctx, payload.AnswerUUID); err != nil {
		logger.Warn().Err(err).Str("answer_uuid", payload.AnswerUUID).Msg("failed to delete answer")
		return err
	}

	logger.Info().Str("answer_uuid", payload.AnswerUUID).Msg("answer deleted")
	return nil
}
