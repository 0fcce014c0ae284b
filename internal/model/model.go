// Package model holds the plain data types exchanged between layers:
// database rows, API responses and request payloads.
//
// There is no lazy loading and no back-references; a question's answers
// are fetched explicitly by the service and attached to
// QuestionWithAnswers.
package model

// Message is the confirmation body returned by delete and root endpoints.
type Message struct {
	Message string `json:"message"`
}
