package service

import (
	"errors"

	"github.com/deppfellow/go-qa/internal/repository"
	"github.com/deppfellow/go-qa/internal/server"
)

type Services struct {
	Question *QuestionService
	Answer   *AnswerService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	if repos == nil || repos.Questions == nil || repos.Answers == nil {
		return nil, errors.New("question and answer repositories are required")
	}

	return &Services{
		Question: NewQuestionService(s, repos.Questions),
		Answer:   NewAnswerService(s, repos.Answers),
	}, nil
}
