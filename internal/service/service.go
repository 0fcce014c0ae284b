// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"

	"github.com/deppfellow/qna-api/internal/errs"
	"github.com/deppfellow/qna-api/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// translate turns a repository error into an *errs.HTTPError.
//
// Failures that end up as a 500 are logged with a stack trace from the
// request logger, since the client only ever sees the generic message.
func translate(ctx context.Context, operation string, err error) error {
	mapped := sqlerr.HandleError(err)

	var httpErr *errs.HTTPError
	if errors.As(mapped, &httpErr) && httpErr.Status >= 500 {
		zerolog.Ctx(ctx).Error().
			Stack().
			Err(errors.WithStack(err)).
			Str("operation", operation).
			Msg("repository call failed")
	}
	return mapped
}
