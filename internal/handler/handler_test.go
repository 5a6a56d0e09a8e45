package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/go-qa/internal/config"
	"github.com/deppfellow/go-qa/internal/errs"
	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer(obs *config.ObservabilityConfig) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: obs,
		},
		Logger: &logger,
	}
}

type fakePinger struct {
	err      error
	deadline bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	_, p.deadline = ctx.Deadline()
	return p.err
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name       string
		db         *fakePinger
		obs        *config.ObservabilityConfig
		wantStatus int
		wantDB     string
	}{
		{
			name:       "database reachable",
			db:         &fakePinger{},
			wantStatus: http.StatusOK,
			wantDB:     "healthy",
		},
		{
			name:       "database down",
			db:         &fakePinger{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantDB:     "unhealthy",
		},
		{
			name:       "no pool",
			wantStatus: http.StatusServiceUnavailable,
			wantDB:     "unhealthy",
		},
		{
			name: "checks disabled",
			db:   &fakePinger{err: errors.New("connection refused")},
			obs: &config.ObservabilityConfig{HealthChecks: config.HealthChecksConfig{
				Enabled: false,
			}},
			wantStatus: http.StatusOK,
		},
		{
			name: "database not listed",
			db:   &fakePinger{err: errors.New("connection refused")},
			obs: &config.ObservabilityConfig{HealthChecks: config.HealthChecksConfig{
				Enabled: true,
				Timeout: time.Second,
				Checks:  []string{"cache"},
			}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer(tt.obs))
			if tt.db != nil {
				h.db = tt.db
			}

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

			if err := h.CheckHealth(c); err != nil {
				t.Fatalf("CheckHealth() error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Status      string                       `json:"status"`
				Environment string                       `json:"environment"`
				Checks      map[string]map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Environment != "test" {
				t.Errorf("environment = %q", body.Environment)
			}
			if got := body.Checks["database"]["status"]; got != tt.wantDB {
				t.Errorf("database check = %q, want %q", got, tt.wantDB)
			}
			if tt.db != nil && tt.wantDB != "" && !tt.db.deadline {
				t.Error("ping ran without a deadline")
			}
		})
	}
}

func TestHealthTimeout(t *testing.T) {
	h := NewHealthHandler(newTestServer(nil))
	if got := h.timeout(); got != defaultHealthCheckTimeout {
		t.Errorf("timeout() = %v, want %v", got, defaultHealthCheckTimeout)
	}

	h = NewHealthHandler(newTestServer(&config.ObservabilityConfig{HealthChecks: config.HealthChecksConfig{Timeout: 2 * time.Second}}))
	if got := h.timeout(); got != 2*time.Second {
		t.Errorf("timeout() = %v, want 2s", got)
	}
}

func TestNewRequestAllocatesFreshValue(t *testing.T) {
	proto := &model.DeleteQuestionRequest{QuestionUUID: "stale"}

	first := newRequest(proto)
	second := newRequest(proto)

	if first == proto || first == second {
		t.Fatal("newRequest() returned a shared value")
	}
	if first.QuestionUUID != "" {
		t.Errorf("newRequest() copied prototype data: %+v", first)
	}
}

func TestHandleBindsValidatesAndResponds(t *testing.T) {
	h := NewHandler(newTestServer(nil))

	var calls int
	endpoint := Handle(h, func(c echo.Context, req *model.CreateQuestionRequest) (*model.QuestionDetail, error) {
		calls++
		return &model.QuestionDetail{Title: req.Title}, nil
	}, http.StatusCreated, &model.CreateQuestionRequest{})

	e := echo.New()

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/question", strings.NewReader(`{"title":"hello"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		if err := endpoint(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"title":"hello"`) {
			t.Errorf("response = %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid payload never reaches the handler", func(t *testing.T) {
		before := calls

		req := httptest.NewRequest(http.MethodPost, "/question", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		err := endpoint(e.NewContext(req, httptest.NewRecorder()))

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
			t.Fatalf("error = %v, want 400 HTTPError", err)
		}
		if calls != before {
			t.Error("handler ran for an invalid payload")
		}
	})
}

func TestHandleNoContentReturnsHandlerError(t *testing.T) {
	h := NewHandler(newTestServer(nil))
	boom := errors.New("boom")

	endpoint := HandleNoContent(h, func(c echo.Context, req *model.DeleteAnswerRequest) error {
		if req.AnswerUUID != "abc" {
			t.Errorf("AnswerUUID = %q, want abc", req.AnswerUUID)
		}
		return boom
	}, http.StatusOK, &model.DeleteAnswerRequest{})

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/answer?answer_uuid=abc", nil), rec)

	if err := endpoint(c); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestServeOpenAPIUI(t *testing.T) {
	h := NewOpenAPIHandler(newTestServer(nil))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

	if err := h.ServeOpenAPIUI(c); err != nil {
		t.Fatalf("ServeOpenAPIUI() error = %v", err)
	}
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Errorf("response = %d %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
}
