package helpers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest            = "bad_request"
	ErrCodeNotFound              = "not_found"
	ErrCodeCapacityExceeded      = "capacity_exceeded"
	ErrCodeDuplicateRegistration = "duplicate_registration"
	ErrCodeInternalError         = "internal_error"
)

// MsgInternalError is the only message clients see for server-side failures.
const MsgInternalError = "internal server error"

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSON writes v as the JSON body with statusCode.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONSuccess encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	WriteJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteInternalError answers 500 without exposing err; callers log err first.
func WriteInternalError(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, MsgInternalError)
}
