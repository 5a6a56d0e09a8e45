// Package validation binds request payloads, runs their Validate method
// and turns validator failures into errs.FieldError lists.
//
// It also owns the identifier format accepted by the repositories.
package validation
