package domain

import "errors"

// Классы ошибок ядра бронирований. Бизнес-ошибки сервисов оборачивают один из них,
// поэтому слой API может определить класс через errors.Is.
var (
	// ErrNotFound пользователь, впечатление, слот или бронирование не существует
	ErrNotFound = errors.New("not found")

	// ErrConflict дубликат слота или бронирование в несовместимом состоянии
	ErrConflict = errors.New("conflict")

	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation error")

	// ErrCapacityExceeded в слоте не осталось мест на момент резервирования
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidTransition нарушение конечного автомата бронирования
	ErrInvalidTransition = errors.New("invalid transition")
)

// kindError бизнес-ошибка конкретного сервиса, относящаяся к одному из классов выше
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NewError создает sentinel-ошибку с текстом msg, для которой errors.Is(err, kind) == true
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
