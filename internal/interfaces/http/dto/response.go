package dto

import "net/http"

// ErrorInfo carries a machine-readable error code and a human message
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Response is the standard API envelope
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse wraps an error code and message in an error envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message, RequestID: requestID},
	}
}

// Common transport-level error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// GetHTTPStatus maps a domain error code to an HTTP status
func GetHTTPStatus(code string) int {
	switch code {
	case "ITEM_NOT_FOUND", "ACCOUNT_NOT_FOUND", "NOT_FOUND", "LAYER_NOT_FOUND":
		return http.StatusNotFound
	case "CONCURRENCY_CONFLICT", "ALREADY_EXISTS":
		return http.StatusConflict
	case "INSUFFICIENT_STOCK", "INSUFFICIENT_LAYER_STOCK", "NEGATIVE_LAYER_QUANTITY",
		"UNBALANCED_JOURNAL", "LINKED_ACCOUNT_MISSING", "INVALID_STATE", "JOURNAL_POSTED",
		"OVERPAYMENT":
		return http.StatusUnprocessableEntity
	case ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
