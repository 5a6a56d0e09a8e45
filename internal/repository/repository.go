// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or delete data, abstracting SQL logic away from the service layer.
//
// Every operation returns either a model value or a *Error whose Kind is
// KindInvalidIdentifier or KindOther; no driver types cross this boundary.
// Identifiers supplied by callers are validated before any statement runs.
package repository

import (
	"context"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuestionRepository persists questions.
type QuestionRepository interface {
	// Create inserts a question and returns it with its generated
	// identifier and timestamp.
	Create(ctx context.Context, question model.Question) (model.QuestionDetail, error)

	// List returns every question in storage order.
	List(ctx context.Context) ([]model.QuestionDetail, error)

	// ListPage returns one page of questions ordered by creation time.
	ListPage(ctx context.Context, page model.Page) ([]model.QuestionDetail, error)

	// Delete removes a question and, through the schema, its answers.
	// Deleting an unknown identifier succeeds.
	Delete(ctx context.Context, questionUUID string) error
}

// AnswerRepository persists answers.
type AnswerRepository interface {
	// Create inserts an answer. A malformed or unknown question identifier
	// is reported as KindInvalidIdentifier.
	Create(ctx context.Context, answer model.Answer) (model.AnswerDetail, error)

	// ListByQuestion returns every answer of a question in storage order.
	// An unknown question yields an empty slice.
	ListByQuestion(ctx context.Context, questionUUID string) ([]model.AnswerDetail, error)

	// ListPageByQuestion returns one page of a question's answers ordered
	// by creation time.
	ListPageByQuestion(ctx context.Context, questionUUID string, page model.Page) ([]model.AnswerDetail, error)

	// Delete removes an answer. Deleting an unknown identifier succeeds.
	Delete(ctx context.Context, answerUUID string) error
}
