// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request correlation and logging, New Relic tracing, CORS,
// rate limiting, panic recovery and the translation of errors into
// JSON responses.
package middleware
