package database

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/go-qa/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type recordingTracer struct {
	name  string
	calls *[]string
}

type tracerKey string

func (r recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	*r.calls = append(*r.calls, "start:"+r.name)
	return context.WithValue(ctx, tracerKey(r.name), true)
}

func (r recordingTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryEndData) {
	if ctx.Value(tracerKey(r.name)) == nil {
		*r.calls = append(*r.calls, "lost-context:"+r.name)
		return
	}
	*r.calls = append(*r.calls, "end:"+r.name)
}

func TestMultiTracerCallsEveryTracerInOrder(t *testing.T) {
	var calls []string
	mt := &multiTracer{tracers: []any{
		recordingTracer{name: "a", calls: &calls},
		"not a tracer",
		recordingTracer{name: "b", calls: &calls},
	}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	want := []string{"start:a", "start:b", "end:a", "end:b"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestSlowQueryTracer(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		err     error
		wantLog bool
	}{
		{name: "fast query", elapsed: 10 * time.Millisecond},
		{name: "slow query", elapsed: 250 * time.Millisecond, wantLog: true},
		{name: "slow failing query", elapsed: time.Second, err: errors.New("boom"), wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			tracer.now = func() time.Time { return base }

			ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
				SQL:  "SELECT * FROM questions",
				Args: []any{"secret"},
			})

			tracer.now = func() time.Time { return base.Add(tt.elapsed) }
			tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: tt.err})

			logged := buf.Len() > 0
			if logged != tt.wantLog {
				t.Fatalf("logged = %v, want %v (output %q)", logged, tt.wantLog, buf.String())
			}
			if logged && strings.Contains(buf.String(), "secret") {
				t.Errorf("query arguments must not be logged: %s", buf.String())
			}
			if tt.err != nil && !strings.Contains(buf.String(), "boom") {
				t.Errorf("error not logged: %s", buf.String())
			}
		})
	}
}

func TestSlowQueryTracerWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	tracer := newSlowQueryTracer(&logger, time.Nanosecond)
	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	if buf.Len() != 0 {
		t.Errorf("unexpected log without start data: %s", buf.String())
	}
}

func TestApplyPoolSettings(t *testing.T) {
	poolConfig, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/db?sslmode=disable")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	applyPoolSettings(poolConfig, config.DatabaseConfig{
		MaxOpenConns:    5,
		MaxIdleConns:    10,
		ConnMaxLifetime: 300,
		ConnMaxIdleTime: 60,
	})

	if poolConfig.MaxConns != 5 {
		t.Errorf("MaxConns = %d, want 5", poolConfig.MaxConns)
	}
	if poolConfig.MinConns != 5 {
		t.Errorf("MinConns = %d, want it capped at MaxConns (5)", poolConfig.MinConns)
	}
	if poolConfig.MaxConnLifetime != 5*time.Minute {
		t.Errorf("MaxConnLifetime = %v, want 5m", poolConfig.MaxConnLifetime)
	}
	if poolConfig.MaxConnIdleTime != time.Minute {
		t.Errorf("MaxConnIdleTime = %v, want 1m", poolConfig.MaxConnIdleTime)
	}
}
