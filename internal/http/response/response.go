// Package response contains the JSON envelopes returned by HTTP handlers
// when a request does not produce a resource body.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response is the generic status envelope.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse is the error envelope as shown in the API docs.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"User not found"`
}

const (
	// StatusOK marks a successful response.
	StatusOK = "OK"
	// StatusError marks a failed response.
	StatusError = "Error"
)

// OK returns a successful Response without data.
func OK() Response {
	return Response{Status: StatusOK}
}

// Error returns an ErrorResponse carrying msg.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError joins validator failures into one human readable message.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
