package types

import "time"

// APIResponse is the uniform envelope for every endpoint.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError is the error payload inside a failed envelope.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// OK builds a success envelope.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now().UTC()}
}

// OKMessage builds a success envelope with a human-readable message.
func OKMessage(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message, Timestamp: time.Now().UTC()}
}

// Fail builds an error envelope.
func Fail(e *APIError) APIResponse {
	return APIResponse{Success: false, Error: e, Timestamp: time.Now().UTC()}
}
