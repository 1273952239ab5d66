package dto

// ErrorResponse is the error payload returned by every failing endpoint.
// Detail is only set when the underlying store supplied a safe,
// non-credential-bearing message.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewErrorResponse creates an error payload with just a message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewErrorResponseWithDetail creates an error payload carrying a safe detail.
func NewErrorResponseWithDetail(message, detail string) ErrorResponse {
	return ErrorResponse{Error: message, Detail: detail}
}
