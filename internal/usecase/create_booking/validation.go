package create_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validateID("userId", req.UserID); err != nil {
		return err
	}

	if err := validateID("experienceId", req.ExperienceID); err != nil {
		return err
	}

	if err := validateID("availabilityId", req.SlotID); err != nil {
		return err
	}

	// Количество гостей <= 0 отклоняем, значение по умолчанию не подставляем
	if req.GuestCount <= 0 {
		return ErrInvalidGuestCount
	}

	return nil
}

// validateID проверяет, что идентификатор задан и является UUID
func validateID(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%w: %s must be a UUID", ErrInvalidInput, field)
	}
	return nil
}

// validateSlotOwnership проверяет, что слот относится к впечатлению
func validateSlotOwnership(slot *domain.Slot, experienceID string) error {
	if slot.ExperienceID != experienceID {
		return ErrSlotExperienceMismatch
	}
	return nil
}

// validateGuestCount проверяет границы [minGuests, maxGuests] впечатления
func validateGuestCount(experience *domain.Experience, guestCount int) error {
	if !experience.AcceptsGuestCount(guestCount) {
		return fmt.Errorf("%w: must be between %d and %d",
			ErrGuestCountOutOfRange, experience.MinGuests, experience.MaxGuests)
	}
	return nil
}
