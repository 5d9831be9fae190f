package types

// ErrorResponse represents an OpenAI-compatible error response. This is
// returned for all error conditions, simulated or real, to stay compatible
// with OpenAI SDKs and tools.
type ErrorResponse struct {
	// Error contains the error details.
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains detailed error information.
type ErrorDetail struct {
	// Message is a human-readable error message.
	Message string `json:"message"`

	// Type categorizes the error.
	// Possible values: "invalid_request_error", "authentication_error",
	// "not_found_error", "rate_limit_error", "server_error",
	// "service_unavailable", "timeout_error".
	Type string `json:"type"`

	// Param is the name of the parameter that caused the error (if applicable).
	Param string `json:"param,omitempty"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty"`
}

// Error type constants matching the OpenAI API specification.
const (
	// ErrorTypeInvalidRequest indicates a client-side error (400).
	ErrorTypeInvalidRequest = "invalid_request_error"

	// ErrorTypeAuthentication indicates an authentication failure (401).
	ErrorTypeAuthentication = "authentication_error"

	// ErrorTypeNotFound indicates a resource was not found (404).
	ErrorTypeNotFound = "not_found_error"

	// ErrorTypeRateLimit indicates too many requests (429).
	ErrorTypeRateLimit = "rate_limit_error"

	// ErrorTypeServerError indicates an internal server error (500).
	ErrorTypeServerError = "server_error"

	// ErrorTypeServiceUnavailable indicates temporary unavailability (503).
	ErrorTypeServiceUnavailable = "service_unavailable"

	// ErrorTypeTimeout indicates a simulated timeout (504).
	ErrorTypeTimeout = "timeout_error"
)

// Error code constants for common error scenarios.
const (
	// CodeRateLimitExceeded indicates the simulated rate limit was hit.
	CodeRateLimitExceeded = "rate_limit_exceeded"

	// CodeInvalidAPIKey indicates a simulated authentication failure.
	CodeInvalidAPIKey = "invalid_api_key"

	// CodeModelNotFound indicates the requested model is not available.
	CodeModelNotFound = "model_not_found"

	// CodeInvalidJSON indicates the request body is not valid JSON.
	CodeInvalidJSON = "invalid_json"

	// CodeMissingField indicates a required field is missing.
	CodeMissingField = "missing_field"
)

// NewErrorResponse creates a new error response with the given details.
func NewErrorResponse(message, errorType, param, code string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Message: message,
			Type:    errorType,
			Param:   param,
			Code:    code,
		},
	}
}

// NewInvalidRequestError creates an error response for invalid requests (400).
func NewInvalidRequestError(message, param, code string) *ErrorResponse {
	return NewErrorResponse(message, ErrorTypeInvalidRequest, param, code)
}

// NewNotFoundError creates an error response for unknown resources (404).
func NewNotFoundError(message string) *ErrorResponse {
	return NewErrorResponse(message, ErrorTypeNotFound, "", CodeModelNotFound)
}
