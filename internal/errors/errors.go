// Package errors defines the application error taxonomy and central handling.
package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an error code, an operator-facing message and a separate
// user-facing message so internals never leak into the chat.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewValidationError marks malformed user or payload input.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: "Неверный формат данных. Попробуйте ещё раз",
		Severity:    SeverityLow,
	}
}

// NewDatasetError marks a product matrix that could not be loaded. Flows
// degrade to "no offerings available" rather than failing.
func NewDatasetError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("Dataset error: %s", underlying),
		UserMessage: "Данные о продуктах недоступны. Попробуйте позже",
		Severity:    SeverityHigh,
		cause:       cause,
	}
}

// NewTelegramError marks a failure talking to the Telegram API.
func NewTelegramError(cause error) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     "Telegram API error",
		UserMessage: "Сервис временно недоступен",
		Severity:    SeverityMedium,
		cause:       cause,
	}
}

// NewStateError marks an operation that is impossible in the current flow state.
func NewStateError(msg string) *AppError {
	return &AppError{
		Code:        "E400",
		Message:     msg,
		UserMessage: "Операция невозможна в текущем состоянии",
		Severity:    SeverityMedium,
	}
}
