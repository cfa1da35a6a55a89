package bakery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Сообщения для покупателя по ответам API пекарни
const (
	MsgNetworkError  = "Network error. Please check your connection."
	MsgBadRequest    = "Bad Request"
	MsgUnauthorized  = "Unauthorized. Please login again."
	MsgForbidden     = "Forbidden. You don't have permission."
	MsgNotFound      = "Resource not found."
	MsgServerError   = "Server error. Please try again later."
	MsgUnknownError  = "Something went wrong."
	MsgUnexpectedErr = "An unexpected error occurred"
)

// ErrorResponseData — тело ответа API пекарни с ошибкой
type ErrorResponseData struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError описывает неудачный запрос к API пекарни.
// Status == 0 означает, что ответ не был получен (сетевая ошибка).
type APIError struct {
	Status  int
	Message string // Сообщение для покупателя, см. ErrorMessage
	Detail  string // Поле message из тела ответа, если было
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("bakery api: %s: %v", e.Message, e.Err)
	}

	return fmt.Sprintf("bakery api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newNetworkError(err error) *APIError {
	return &APIError{
		Message: MsgNetworkError,
		Err:     err,
	}
}

func newStatusError(status int, body []byte) *APIError {
	data := parseErrorBody(body)

	return &APIError{
		Status:  status,
		Message: ErrorMessage(status, body),
		Detail:  data.Message,
	}
}

// ErrorMessage переводит статус и тело ответа в сообщение для покупателя.
// status == 0 означает, что ответ не был получен.
func ErrorMessage(status int, body []byte) string {
	if status == 0 {
		return MsgNetworkError
	}

	data := parseErrorBody(body)

	switch status {
	case http.StatusBadRequest:
		if data.Error != "" {
			return data.Error
		}
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		if data.Message != "" {
			return data.Message
		}
		return MsgUnknownError
	}
}

// FormatErrorMessage возвращает читаемый текст для произвольной ошибки.
func FormatErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedErr
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return apiErr.Message
	}

	return err.Error()
}

// parseErrorBody разбирает тело ошибки. Некорректное тело даёт пустую структуру.
func parseErrorBody(body []byte) ErrorResponseData {
	var data ErrorResponseData
	if len(body) == 0 {
		return data
	}

	_ = json.Unmarshal(body, &data)
	return data
}
