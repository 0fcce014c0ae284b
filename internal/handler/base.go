package handler

import (
	"time"

	"github.com/deppfellow/qna-api/internal/middleware"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger and the New Relic
// application through *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// Payload constrains a request type: PReq must be *Req and validate itself.
//
// Pinning the pointer type lets Handle allocate a fresh Req for every
// request, so concurrent requests never share a payload.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// HandlerFunc is a typed endpoint: it receives a bound and validated
// payload and returns the response body or an error.
type HandlerFunc[Req any, PReq Payload[Req], Res any] func(c echo.Context, req PReq) (Res, error)

// handleRequest is the shared execution pipeline for all typed handlers.
//
// It centralizes:
//
// - request binding + validation
// - structured logging with the request-scoped logger
// - New Relic attributes and error reporting
// - timing (validation, handler and total duration)
// - writing the JSON response
func handleRequest[Req any, PReq Payload[Req], Res any](
	c echo.Context,
	handler HandlerFunc[Req, PReq, Res],
	status int,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	req := PReq(new(Req))
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

// Handle wraps a typed handler with binding, validation, logging and
// tracing, and writes its result as JSON with the given status.
//
//	e.POST("/questions", handler.Handle(h, h.CreateQuestion, http.StatusOK))
func Handle[Req any, PReq Payload[Req], Res any](
	h Handler,
	handler HandlerFunc[Req, PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, handler, status)
	}
}
