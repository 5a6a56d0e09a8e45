package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/deppfellow/go-qa/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// AnswerRepo is the Postgres AnswerRepository.
type AnswerRepo struct {
	db DBTX
}

var _ AnswerRepository = (*AnswerRepo)(nil)

func NewAnswerRepo(db DBTX) *AnswerRepo {
	return &AnswerRepo{db: db}
}

const answerColumns = `answer_uuid, question_uuid, content, created_at`

// Create inserts an answer.
//
// The question is not looked up first: the foreign key on
// answers.question_uuid decides, and its violation is reported as an
// invalid identifier, the same kind a malformed one gets.
func (r *AnswerRepo) Create(ctx context.Context, answer model.Answer) (model.AnswerDetail, error) {
	questionID, err := parseIdentifier("question_uuid", answer.QuestionUUID)
	if err != nil {
		return model.AnswerDetail{}, err
	}

	const query = `
	INSERT INTO answers (question_uuid, content)
	VALUES ($1, $2)
	RETURNING ` + answerColumns

	out, err := scanAnswer(r.db.QueryRow(ctx, query, questionID, answer.Content))
	if err != nil {
		if sqlerr.IsForeignKeyViolation(err) {
			return model.AnswerDetail{}, invalidIdentifier(
				fmt.Sprintf("Invalid question UUID: %s", answer.QuestionUUID), err)
		}
		return model.AnswerDetail{}, other("create answer", err)
	}
	return out, nil
}

func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionUUID string) ([]model.AnswerDetail, error) {
	questionID, err := parseIdentifier("question_uuid", questionUUID)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + answerColumns + ` FROM answers WHERE question_uuid = $1`

	out, err := r.collect(ctx, query, questionID)
	if err != nil {
		return nil, other("list answers", err)
	}
	return out, nil
}

func (r *AnswerRepo) ListPageByQuestion(ctx context.Context, questionUUID string, page model.Page) ([]model.AnswerDetail, error) {
	questionID, err := parseIdentifier("question_uuid", questionUUID)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, other("list answers", err)
	}

	const query = `
	SELECT ` + answerColumns + `
	FROM answers
	WHERE question_uuid = $1
	ORDER BY created_at, answer_uuid
	LIMIT $2 OFFSET $3`

	out, err := r.collect(ctx, query, questionID, page.Limit, page.Offset)
	if err != nil {
		return nil, other("list answers", err)
	}
	return out, nil
}

func (r *AnswerRepo) Delete(ctx context.Context, answerUUID string) error {
	id, err := parseIdentifier("answer_uuid", answerUUID)
	if err != nil {
		return err
	}

	const query = `DELETE FROM answers WHERE answer_uuid = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return other("delete answer", err)
	}
	return nil
}

func (r *AnswerRepo) collect(ctx context.Context, query string, args ...any) ([]model.AnswerDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AnswerDetail, error) {
		return scanAnswer(row)
	})
}

func scanAnswer(row pgx.Row) (model.AnswerDetail, error) {
	var out model.AnswerDetail
	if err := row.Scan(&out.AnswerUUID, &out.QuestionUUID, &out.Content, &out.CreatedAt); err != nil {
		return model.AnswerDetail{}, err
	}
	return out, nil
}
