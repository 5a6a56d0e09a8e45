// Package handler is the HTTP layer between the router and the services.
//
// Handlers receive payloads that are already bound and validated by Handle
// and HandleNoContent, call the matching service and return its result.
// Errors are passed up untouched; the global error handler shapes them.
package handler
