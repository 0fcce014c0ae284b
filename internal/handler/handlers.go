// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It binds and validates requests through the validation
// package and calls the appropriate service. It acts as the
// interface between the HTTP request and the core business
// logic.
package handler

import (
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/deppfellow/qna-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Root      *RootHandler
	Questions *QuestionHandler
	Answers   *AnswerHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:      NewRootHandler(s),
		Questions: NewQuestionHandler(s, services.Questions),
		Answers:   NewAnswerHandler(s, services.Answers),
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}
