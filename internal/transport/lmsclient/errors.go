package lmsclient

import (
	"fmt"
)

// ResponseError ответ сервера со статусом отличным от 2xx. Message - текст из поля message ответа, если он был.
type ResponseError struct {
	Code    int
	Message string
}

func NewResponseError(code int, message string) *ResponseError {
	return &ResponseError{Code: code, Message: message}
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Unexpected status code %d", e.Code)
	}
	return fmt.Sprintf("Unexpected status code %d: %s", e.Code, e.Message)
}
