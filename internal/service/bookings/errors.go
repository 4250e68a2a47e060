package bookings

import (
	"errors"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.NewError(domain.ErrNotFound, "booking not found")

	// ErrExperienceNotFound возвращается, когда впечатление бронирования не найдено
	ErrExperienceNotFound = domain.NewError(domain.ErrNotFound, "experience not found")

	// ErrCannotConfirm возвращается при подтверждении бронирования не в статусе pending
	ErrCannotConfirm = domain.NewError(domain.ErrInvalidTransition, "only pending bookings can be confirmed")

	// ErrCannotComplete возвращается при завершении бронирования не в статусе confirmed
	ErrCannotComplete = domain.NewError(domain.ErrInvalidTransition, "only confirmed bookings can be completed")

	// ErrCannotCancel возвращается при отмене отменённого или завершённого бронирования
	ErrCannotCancel = domain.NewError(domain.ErrConflict, "booking cannot be cancelled")

	// ErrInvalidStatusTransition возвращается при попытке установить pending или no_show
	ErrInvalidStatusTransition = domain.NewError(domain.ErrInvalidTransition, "status cannot be set directly")

	// ErrBookingNotActive возвращается при изменении количества гостей в завершённом бронировании
	ErrBookingNotActive = domain.NewError(domain.ErrConflict, "booking is no longer active")

	// ErrInvalidGuestCount возвращается при количестве гостей <= 0
	ErrInvalidGuestCount = domain.NewError(domain.ErrValidation, "guest count must be positive")

	// ErrGuestCountOutOfRange возвращается, когда количество гостей вне границ впечатления
	ErrGuestCountOutOfRange = domain.NewError(domain.ErrValidation, "guest count is outside the experience bounds")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает мест для увеличения брони
	ErrCapacityExceeded = domain.NewError(domain.ErrCapacityExceeded, "slot no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
