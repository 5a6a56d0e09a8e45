// Package model holds the domain values exchanged between the HTTP,
// service and repository layers.
//
// Two shapes exist per entity:
//   - the input value (Question, Answer) carrying only caller-supplied fields
//   - the persisted detail (QuestionDetail, AnswerDetail) read back from
//     storage, including the engine-generated identifier and timestamp
package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every request payload. Field errors are reported
// under their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
