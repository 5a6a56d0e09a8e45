package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-qa/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		state string
		want  Code
	}{
		{"23503", ForeignKeyViolation},
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"22P02", InvalidText},
		{"40P01", DeadlockDetected},
		{"57014", QueryCanceled},
		{"XX000", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := MapCode(tt.state); got != tt.want {
			t.Errorf("MapCode(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestMapSeverity(t *testing.T) {
	if got := MapSeverity("FATAL"); got != SeverityFatal {
		t.Errorf("MapSeverity(FATAL) = %q", got)
	}
	if got := MapSeverity("whatever"); got != SeverityError {
		t.Errorf("MapSeverity(whatever) = %q, want ERROR", got)
	}
}

func TestClassify(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Severity: "ERROR", Message: "violates foreign key"}

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: Other},
		{name: "raw pg error", err: fk, want: ForeignKeyViolation},
		{name: "wrapped pg error", err: fmt.Errorf("insert answer: %w", fk), want: ForeignKeyViolation},
		{name: "converted", err: ConvertPgError(&pgconn.PgError{Code: "23505"}), want: UniqueViolation},
		{name: "no rows", err: pgx.ErrNoRows, want: Other},
		{name: "plain", err: errors.New("connection refused"), want: Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23503"})) {
		t.Error("23503 should be a foreign key violation")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 should not be a foreign key violation")
	}
	if IsForeignKeyViolation(nil) {
		t.Error("nil should not be a foreign key violation")
	}
}

func TestConvertPgErrorUnwraps(t *testing.T) {
	src := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        "insert or update on table \"answers\" violates foreign key constraint",
		TableName:      "answers",
		ColumnName:     "question_uuid",
		ConstraintName: "answers_question_uuid_fkey",
	}

	converted := ConvertPgError(src)
	if converted.Code != ForeignKeyViolation || converted.DatabaseCode != "23503" {
		t.Errorf("converted = %+v", converted)
	}

	var pgerr *pgconn.PgError
	if !errors.As(converted, &pgerr) || pgerr != src {
		t.Error("ConvertPgError result should unwrap to the source error")
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "foreign key names the referenced entity",
			err:  &Error{Code: ForeignKeyViolation, TableName: "answers", ColumnName: "question_uuid"},
			want: "QUESTION_NOT_FOUND",
		},
		{
			name: "unique uses the table",
			err:  &Error{Code: UniqueViolation, TableName: "questions"},
			want: "QUESTION_ALREADY_EXISTS",
		},
		{
			name: "not null",
			err:  &Error{Code: NotNullViolation, TableName: "answers", ColumnName: "content"},
			want: "ANSWER_REQUIRED",
		},
		{
			name: "unknown table",
			err:  &Error{Code: CheckViolation},
			want: "RECORD_INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateErrorCode(tt.err); got != tt.want {
				t.Errorf("generateErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := map[string]string{
		"":                      "",
		"unique_questions_slug": "slug",
		"questions_title_key":   "title",
		"questions_pkey":        "",
	}

	for in, want := range tests {
		if got := extractColumnForUniqueViolation(in); got != want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "foreign key",
			err:         &pgconn.PgError{Code: "23503", TableName: "answers", ColumnName: "question_uuid"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "QUESTION_NOT_FOUND",
			wantMessage: "The referenced Question does not exist",
		},
		{
			name:        "unique with column",
			err:         &pgconn.PgError{Code: "23505", TableName: "questions", ConstraintName: "questions_title_key"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "QUESTION_ALREADY_EXISTS",
			wantMessage: "A Question with this Title already exists",
		},
		{
			name:        "not null",
			err:         &pgconn.PgError{Code: "23502", TableName: "answers", ColumnName: "content"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "ANSWER_REQUIRED",
			wantMessage: "The Content is required",
		},
		{
			name:        "unclassified pg error",
			err:         &pgconn.PgError{Code: "XX000", Message: "internal detail"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "no rows",
			err:         fmt.Errorf("get question: %w", sql.ErrNoRows),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Resource not found",
		},
		{
			name:        "already http",
			err:         errs.NewNotFoundError("Question not found", true, nil),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Question not found",
		},
		{
			name:        "anything else",
			err:         errors.New("dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatal("HandleError should return *errs.HTTPError")
			}
			if httpErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", httpErr.Status, tt.wantStatus)
			}
			if httpErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", httpErr.Code, tt.wantCode)
			}
			if httpErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", httpErr.Message, tt.wantMessage)
			}
		})
	}
}
