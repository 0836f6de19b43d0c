// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorBody carries machine-readable error details.
// Fields is populated only for validation failures.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse is the envelope for all API errors.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds an error envelope without field details.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}

// NewValidationErrorResponse builds a 422 envelope with per-field messages.
func NewValidationErrorResponse(fields map[string]string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:    "VALIDATION_FAILED",
		Message: "One or more fields are invalid",
		Fields:  fields,
	}}
}
