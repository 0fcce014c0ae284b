// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the service is an *HTTPError so clients
// always receive the same JSON structure: a machine-friendly code,
// a human-readable message, the HTTP status and, for validation
// failures, per-field details.
package errs
