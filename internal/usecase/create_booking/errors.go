package create_booking

import (
	"errors"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = domain.NewError(domain.ErrNotFound, "create_booking: user not found")

	// ErrExperienceNotFound возвращается, когда впечатление не найдено
	ErrExperienceNotFound = domain.NewError(domain.ErrNotFound, "create_booking: experience not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = domain.NewError(domain.ErrNotFound, "create_booking: availability slot not found")

	// ErrExperienceInactive возвращается, когда впечатление снято с публикации
	ErrExperienceInactive = domain.NewError(domain.ErrValidation, "create_booking: experience is not active")

	// ErrSlotExperienceMismatch возвращается, когда слот относится к другому впечатлению
	ErrSlotExperienceMismatch = domain.NewError(domain.ErrValidation, "create_booking: slot does not belong to this experience")

	// ErrSlotNotAvailable возвращается, когда в слоте нет мест для указанного количества гостей
	ErrSlotNotAvailable = domain.NewError(domain.ErrCapacityExceeded, "create_booking: slot is not available")

	// ErrInvalidGuestCount возвращается при количестве гостей <= 0
	ErrInvalidGuestCount = domain.NewError(domain.ErrValidation, "create_booking: guest count must be positive")

	// ErrGuestCountOutOfRange возвращается, когда количество гостей вне границ впечатления
	ErrGuestCountOutOfRange = domain.NewError(domain.ErrValidation, "create_booking: guest count is outside the experience bounds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrValidation, "create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
