package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-qa/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// referenceSuffixes are the column suffixes that mark a foreign key column,
// e.g. question_uuid or owner_id.
var referenceSuffixes = []string{"_uuid", "_id"}

// uniqueKeyPattern matches the "<table>_<column>_key" naming Postgres uses
// for implicit unique constraints.
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error. The original
// is kept and returned by Unwrap.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine readable code of the form
// <ENTITY>_<ACTION>, e.g. QUESTION_NOT_FOUND.
//
// For foreign key violations the entity is the referenced one, taken from
// the column, since the table is the one holding the reference.
func generateErrorCode(sqlErr *Error) string {
	domain := ""
	if sqlErr.Code == ForeignKeyViolation {
		domain = referencedEntity(sqlErr.ColumnName)
	}
	if domain == "" {
		domain = singular(sqlErr.TableName)
	}
	if domain == "" {
		domain = "record"
	}

	action := "ERROR"
	switch sqlErr.Code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", strings.ToUpper(domain), action)
}

// formatUserFriendlyMessage produces a message safe to show to clients.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by HandleError when the column is known.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName picks the entity a message should talk about.
//
// A reference column ("question_uuid") wins over the table name
// ("answers"), which is singularized. Falls back to "record".
func getEntityName(tableName, columnName string) string {
	if entity := referencedEntity(columnName); entity != "" {
		return humanizeText(entity)
	}

	if entity := singular(tableName); entity != "" {
		return humanizeText(entity)
	}

	return "record"
}

// referencedEntity returns "question" for "question_uuid", or "" when the
// column does not look like a reference.
func referencedEntity(columnName string) string {
	column := strings.ToLower(columnName)
	for _, suffix := range referenceSuffixes {
		if strings.HasSuffix(column, suffix) && len(column) > len(suffix) {
			return strings.TrimSuffix(column, suffix)
		}
	}
	return ""
}

// singular strips a trailing "s". Good enough for this schema.
func singular(tableName string) string {
	if len(tableName) > 1 && strings.HasSuffix(strings.ToLower(tableName), "s") {
		return tableName[:len(tableName)-1]
	}
	return tableName
}

// humanizeText turns "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint
// name. Both "unique_<table>_<column>" and "<table>_<column>_key" are
// understood.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
// Errors that already are HTTP errors pass through untouched. Constraint
// violations become 400s, missing rows become 404s and everything else is
// an opaque 500 so driver details never reach the client.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation, InvalidText:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
