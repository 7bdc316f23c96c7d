// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/stockroom/stockroom/internal/validation"

// Envelope is the fixed JSON wrapper used for every API response:
// {success, message, data?} plus a field-keyed errors map on 422s.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// Success wraps a payload in a success envelope.
func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Failure wraps a message in a failure envelope.
func Failure(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// ValidationFailure wraps a field-keyed error map in the fixed
// "Validation failed" envelope.
func ValidationFailure(fields validation.Errors) Envelope {
	return Envelope{Success: false, Message: "Validation failed", Errors: fields}
}
