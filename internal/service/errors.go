package service

import (
	"errors"
	"fmt"
)

// Коды прикладных ошибок.
const (
	CodeInput           = "INPUT"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUpstream        = "UPSTREAM"
	CodeNothingToDelete = "NOTHING_TO_DELETE"
	CodeForbidden       = "FORBIDDEN"
)

// MsgSomethingWentWrong показывается оператору при любой непредвиденной ошибке API управления.
const MsgSomethingWentWrong = "Something went wrong while processing the request! We have notified the team!"

// AppError описывает прикладную ошибку сервиса:
// код, человекочитаемое сообщение для оператора и вложенная ошибка.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error реализует интерфейс error для AppError.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для поддержки errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInput конструирует AppError для некорректного ростера или источника.
func ErrInput(msg string) *AppError {
	return &AppError{Code: CodeInput, Message: msg}
}

// ErrNotFound конструирует AppError для отсутствующего участника, команды или пользователя.
func ErrNotFound(msg string) *AppError {
	return &AppError{Code: CodeNotFound, Message: msg}
}

// ErrConflict конструирует AppError для ответов 400 (уже в команде, не в команде).
func ErrConflict(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg}
}

// ErrUpstream конструирует AppError для прочих ответов API управления.
func ErrUpstream(err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: MsgSomethingWentWrong, Err: err}
}

// ErrNothingToDelete возвращается, если у джема не осталось ни категорий, ни ролей.
func ErrNothingToDelete() *AppError {
	return &AppError{
		Code:    CodeNothingToDelete,
		Message: ":x: The Code Jam channels and roles have already been deleted! ",
	}
}

// ErrForbidden конструирует AppError для команд, запрещённых вызывающему.
func ErrForbidden(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg}
}

// HasCode помогает определить, соответствует ли ошибка заданному коду.
func HasCode(err error, code string) bool {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code == code
	}
	return false
}

// IsNotFound помогает определить, соответствует ли ошибка коду NOT_FOUND.
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
