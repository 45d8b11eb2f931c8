package api

import "fmt"

// AuthenticationError означает, что сервер отверг учетные данные при логине.
// Message содержит текст ошибки сервера, если он был в ответе.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed: %s", e.Message)
	}
	return "authentication failed"
}

// APIError означает любой другой неуспешный ответ backend API.
// StatusCode равен нулю, если ответ не был получен вовсе (сетевая ошибка).
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
