// Package router builds the Echo instance: middleware order, the global
// error handler and every route.
package router

import (
	"net/http"

	"github.com/deppfellow/go-qa/internal/handler"
	"github.com/deppfellow/go-qa/internal/middleware"
	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: the rate limiter rejects early, the request ID
// and New Relic transaction must exist before the context enhancer builds
// the request logger, and Recover sits innermost so panics still pass
// through logging and tracing.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerQuestionRoutes(router, h)
	registerAnswerRoutes(router, h)

	return router
}

func registerQuestionRoutes(r *echo.Echo, h *handler.Handlers) {
	qh := h.Question

	r.POST("/question", handler.Handle(qh.Handler, qh.CreateQuestion, http.StatusCreated, &model.CreateQuestionRequest{}))
	r.GET("/questions", handler.Handle(qh.Handler, qh.GetQuestions, http.StatusOK, &model.ListQuestionsRequest{}))
	r.DELETE("/question", handler.HandleNoContent(qh.Handler, qh.DeleteQuestion, http.StatusOK, &model.DeleteQuestionRequest{}))
}

func registerAnswerRoutes(r *echo.Echo, h *handler.Handlers) {
	ah := h.Answer

	r.POST("/answer", handler.Handle(ah.Handler, ah.CreateAnswer, http.StatusCreated, &model.CreateAnswerRequest{}))
	r.GET("/answers", handler.Handle(ah.Handler, ah.GetAnswers, http.StatusOK, &model.ListAnswersRequest{}))
	r.DELETE("/answer", handler.HandleNoContent(ah.Handler, ah.DeleteAnswer, http.StatusOK, &model.DeleteAnswerRequest{}))
}
