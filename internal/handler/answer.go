package handler

import (
	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/server"
	"github.com/deppfellow/go-qa/internal/service"
	"github.com/labstack/echo/v4"
)

type AnswerHandler struct {
	Handler
	answerService *service.AnswerService
}

func NewAnswerHandler(s *server.Server, answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		Handler:       NewHandler(s),
		answerService: answerService,
	}
}

func (h *AnswerHandler) CreateAnswer(c echo.Context, payload *model.CreateAnswerRequest) (*model.AnswerDetail, error) {
	return h.answerService.CreateAnswer(c.Request().Context(), payload)
}

// GetAnswers lists the answers of one question. An unknown question yields
// an empty list.
func (h *AnswerHandler) GetAnswers(c echo.Context, payload *model.ListAnswersRequest) ([]model.AnswerDetail, error) {
	return h.answerService.GetAnswers(c.Request().Context(), payload)
}

func (h *AnswerHandler) DeleteAnswer(c echo.Context, payload *model.DeleteAnswerRequest) error {
	return h.answerService.DeleteAnswer(c.Request().Context(), payload)
}
