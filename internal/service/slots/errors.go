package slots

import (
	"errors"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = domain.NewError(domain.ErrNotFound, "slot not found")

	// ErrExperienceNotFound возвращается, когда впечатление не найдено
	ErrExperienceNotFound = domain.NewError(domain.ErrNotFound, "experience not found")

	// ErrSlotAlreadyExists возвращается, когда слот с тем же впечатлением, датой и временем уже есть
	ErrSlotAlreadyExists = domain.NewError(domain.ErrConflict, "availability slot already exists for this date and time")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = domain.NewError(domain.ErrValidation, "start time must be before end time")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат пакетного создания
	ErrInvalidDateRange = domain.NewError(domain.ErrValidation, "invalid date range")

	// ErrInvalidGuestCount возвращается при количестве гостей <= 0
	ErrInvalidGuestCount = domain.NewError(domain.ErrValidation, "guest count must be positive")

	// ErrInvalidCapacity возвращается при некорректном maxSlots
	ErrInvalidCapacity = domain.NewError(domain.ErrValidation, "max slots must be positive and not less than booked slots")

	// ErrInvalidStatus возвращается при попытке вручную установить вычисляемый статус
	ErrInvalidStatus = domain.NewError(domain.ErrValidation, "slot status can only be set to available or blocked")

	// ErrSlotHasBookings возвращается при удалении слота с активными бронированиями
	ErrSlotHasBookings = domain.NewError(domain.ErrValidation, "cannot delete availability slot with existing bookings")

	// ErrNoNewSlots возвращается, когда пакетное создание не добавило ни одного слота
	ErrNoNewSlots = domain.NewError(domain.ErrValidation, "no new availability slots to create")

	// ErrCapacityExceeded возвращается, когда места закончились на момент резервирования
	ErrCapacityExceeded = domain.NewError(domain.ErrCapacityExceeded, "slot no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.ErrValidation, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots.service: internal error")
)
