package repository

import (
	"context"

	"github.com/deppfellow/go-qa/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// QuestionRepo is the Postgres QuestionRepository.
type QuestionRepo struct {
	db DBTX
}

var _ QuestionRepository = (*QuestionRepo)(nil)

func NewQuestionRepo(db DBTX) *QuestionRepo {
	return &QuestionRepo{db: db}
}

const questionColumns = `question_uuid, title, description, created_at`

func (r *QuestionRepo) Create(ctx context.Context, question model.Question) (model.QuestionDetail, error) {
	const query = `
	INSERT INTO questions (title, description)
	VALUES ($1, $2)
	RETURNING ` + questionColumns

	out, err := scanQuestion(r.db.QueryRow(ctx, query, question.Title, question.Description))
	if err != nil {
		return model.QuestionDetail{}, other("create question", err)
	}
	return out, nil
}

func (r *QuestionRepo) List(ctx context.Context) ([]model.QuestionDetail, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions`

	out, err := r.collect(ctx, query)
	if err != nil {
		return nil, other("list questions", err)
	}
	return out, nil
}

func (r *QuestionRepo) ListPage(ctx context.Context, page model.Page) ([]model.QuestionDetail, error) {
	if err := page.Validate(); err != nil {
		return nil, other("list questions", err)
	}

	const query = `
	SELECT ` + questionColumns + `
	FROM questions
	ORDER BY created_at, question_uuid
	LIMIT $1 OFFSET $2`

	out, err := r.collect(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, other("list questions", err)
	}
	return out, nil
}

func (r *QuestionRepo) Delete(ctx context.Context, questionUUID string) error {
	id, err := parseIdentifier("question_uuid", questionUUID)
	if err != nil {
		return err
	}

	const query = `DELETE FROM questions WHERE question_uuid = $1`

	// Zero affected rows is not an error.
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return other("delete question", err)
	}
	return nil
}

func (r *QuestionRepo) collect(ctx context.Context, query string, args ...any) ([]model.QuestionDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.QuestionDetail, error) {
		return scanQuestion(row)
	})
}

// scanQuestion reads questionColumns. A NULL description reads as "".
func scanQuestion(row pgx.Row) (model.QuestionDetail, error) {
	var (
		out         model.QuestionDetail
		description pgtype.Text
	)

	if err := row.Scan(&out.QuestionUUID, &out.Title, &description, &out.CreatedAt); err != nil {
		return model.QuestionDetail{}, err
	}

	out.Description = description.String
	return out, nil
}
