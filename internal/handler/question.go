package handler

import (
	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/server"
	"github.com/deppfellow/go-qa/internal/service"
	"github.com/labstack/echo/v4"
)

type QuestionHandler struct {
	Handler
	questionService *service.QuestionService
}

func NewQuestionHandler(s *server.Server, questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		Handler:         NewHandler(s),
		questionService: questionService,
	}
}

func (h *QuestionHandler) CreateQuestion(c echo.Context, payload *model.CreateQuestionRequest) (*model.QuestionDetail, error) {
	return h.questionService.CreateQuestion(c.Request().Context(), payload)
}

func (h *QuestionHandler) GetQuestions(c echo.Context, payload *model.ListQuestionsRequest) ([]model.QuestionDetail, error) {
	return h.questionService.GetQuestions(c.Request().Context(), payload)
}

// DeleteQuestion removes the question and its answers. An unknown
// identifier still succeeds.
func (h *QuestionHandler) DeleteQuestion(c echo.Context, payload *model.DeleteQuestionRequest) error {
	return h.questionService.DeleteQuestion(c.Request().Context(), payload)
}
