package handler

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the envelope every portal endpoint returns. Exactly one of
// Data and Message is populated: Data on success, Message on error.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{Status: statusSuccess, Data: data}
}

func NewErrorResponse(message string) *Response {
	return &Response{Status: statusError, Message: message}
}

// IsSuccess is mainly for API consumers that switch on the envelope rather
// than the HTTP status code.
func (r *Response) IsSuccess() bool {
	return r.Status == statusSuccess
}
