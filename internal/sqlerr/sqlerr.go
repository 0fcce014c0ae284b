// Package sqlerr handles database driver errors.
//
// It parses Postgres SQLSTATE codes coming out of pgx and converts
// them into client-facing *errs.HTTPError values (e.g. a missing row
// becomes 404, a constraint violation becomes 400, anything else a
// generic 500).
package sqlerr
