package model

// Response is a generic struct for API responses
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
	Message string      `json:"message"`
}

// ErrorResponse builds the envelope used for every failed request.
func ErrorResponse(errMsg string) Response {
	return Response{
		Error:   &errMsg,
		Message: "Error",
	}
}

// MessageResponse builds a success envelope carrying only a message.
func MessageResponse(msg string) Response {
	return Response{Message: msg}
}
