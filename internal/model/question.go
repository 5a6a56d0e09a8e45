package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is the data a caller supplies to create a question.
type Question struct {
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=10000"`
}

// QuestionDetail is a persisted question.
type QuestionDetail struct {
	QuestionUUID uuid.UUID `json:"question_uuid"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateQuestionRequest is the POST /question payload.
type CreateQuestionRequest struct {
	Question
}

func (r *CreateQuestionRequest) Validate() error {
	return validate.Struct(r)
}

// ListQuestionsRequest is the GET /questions payload.
//
// Without a limit every question is returned in storage order.
type ListQuestionsRequest struct {
	PageRequest
}

func (r *ListQuestionsRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteQuestionRequest is the DELETE /question payload.
//
// The identifier is only checked for presence here; its format is owned by
// the repository, which reports malformed values as invalid identifiers.
type DeleteQuestionRequest struct {
	QuestionUUID string `json:"question_uuid" query:"question_uuid" validate:"required"`
}

func (r *DeleteQuestionRequest) Validate() error {
	return validate.Struct(r)
}
