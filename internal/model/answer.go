package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is the data a caller supplies to create an answer.
//
// QuestionUUID stays a raw string until the repository validates it.
type Answer struct {
	QuestionUUID string `json:"question_uuid" validate:"required"`
	Content      string `json:"content" validate:"required,max=10000"`
}

// AnswerDetail is a persisted answer.
type AnswerDetail struct {
	AnswerUUID   uuid.UUID `json:"answer_uuid"`
	QuestionUUID uuid.UUID `json:"question_uuid"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateAnswerRequest is the POST /answer payload.
type CreateAnswerRequest struct {
	Answer
}

func (r *CreateAnswerRequest) Validate() error {
	return validate.Struct(r)
}

// ListAnswersRequest is the GET /answers payload.
type ListAnswersRequest struct {
	QuestionUUID string `json:"question_uuid" query:"question_uuid" validate:"required"`
	PageRequest
}

func (r *ListAnswersRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteAnswerRequest is the DELETE /answer payload.
type DeleteAnswerRequest struct {
	AnswerUUID string `json:"answer_uuid" query:"answer_uuid" validate:"required"`
}

func (r *DeleteAnswerRequest) Validate() error {
	return validate.Struct(r)
}
