package main

// ErrorResponse is the JSON body written for any non-200 response.
type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, err any) ErrorResponse {
	return ErrorResponse{Request: request, Error: err}
}
