package repository

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound соответствует ответу 404 от API управления.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest соответствует ответу 400 от API управления.
	ErrBadRequest = errors.New("bad request")
)

// ResponseCodeError возвращается, если API управления ответило статусом вне 2xx.
type ResponseCodeError struct {
	Method string
	Path   string
	Status int
	Body   string
}

// Error реализует интерфейс error.
func (e *ResponseCodeError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Is позволяет сравнивать ошибку с ErrNotFound и ErrBadRequest через errors.Is.
func (e *ResponseCodeError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}
