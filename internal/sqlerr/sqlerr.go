// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into stable values the rest of the application can switch
// on (e.g., turning SQLSTATE 23503 into ForeignKeyViolation), and into
// user-friendly HTTP errors for anything that reaches the global error
// handler unclassified.
package sqlerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is an engine-independent category for a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	InvalidText         Code = "invalid_text_representation"
	TooManyConnections  Code = "too_many_connections"
	QueryCanceled       Code = "query_canceled"
	SerializationFailed Code = "serialization_failure"
	DeadlockDetected    Code = "deadlock_detected"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
)

// PostgreSQL SQLSTATE values this package recognises.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
	pgInvalidText         = "22P02"
	pgTooManyConnections  = "53300"
	pgQueryCanceled       = "57014"
	pgSerializationFailed = "40001"
	pgDeadlockDetected    = "40P01"
	pgUndefinedTable      = "42P01"
	pgUndefinedColumn     = "42703"
)

// MapCode maps a SQLSTATE to a Code. Unknown states map to Other.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgNotNullViolation:
		return NotNullViolation
	case pgForeignKeyViolation:
		return ForeignKeyViolation
	case pgUniqueViolation:
		return UniqueViolation
	case pgCheckViolation:
		return CheckViolation
	case pgExclusionViolation:
		return ExclusionViolation
	case pgInvalidText:
		return InvalidText
	case pgTooManyConnections:
		return TooManyConnections
	case pgQueryCanceled:
		return QueryCanceled
	case pgSerializationFailed:
		return SerializationFailed
	case pgDeadlockDetected:
		return DeadlockDetected
	case pgUndefinedTable:
		return UndefinedTable
	case pgUndefinedColumn:
		return UndefinedColumn
	default:
		return Other
	}
}

// Severity mirrors the PostgreSQL message severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity text reported by the server.
// Anything unrecognised is treated as an ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a structured, driver-independent view of a database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s %s: %s (constraint %s)", e.Severity, e.DatabaseCode, e.Message, e.ConstraintName)
	}
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// Classify returns the Code for any error.
//
// Errors that already went through ConvertPgError keep their code, raw
// *pgconn.PgError values anywhere in the chain are mapped, and everything
// else (connection failures, timeouts, scan errors) is Other.
func Classify(err error) Code {
	if err == nil {
		return Other
	}

	if code := ErrCode(err); code != Other {
		return code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// IsForeignKeyViolation reports whether err is a referential integrity
// violation raised by the database.
func IsForeignKeyViolation(err error) bool {
	return Classify(err) == ForeignKeyViolation
}
