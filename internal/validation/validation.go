// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or minimum values) defined in struct tags
// and turns validation errors into field-level details the
// client can act on.
package validation
