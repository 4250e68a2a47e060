package models

import (
	"errors"
	"strings"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")

	// ErrInvalidWeekday возвращается при некорректном названии дня недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	ExperienceID  string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	MaxSlots      int
	PriceOverride *float64
	Notes         *string
}

// CreateBulkSlotsRequest запрос на создание слотов на каждый день диапазона
type CreateBulkSlotsRequest struct {
	ExperienceID  string
	StartDate     time.Time // Включительно
	EndDate       time.Time // Включительно
	StartTime     types.TimeString
	EndTime       types.TimeString
	MaxSlots      int
	PriceOverride *float64
	ExcludeDays   []string // Названия дней недели: "monday", "sunday", ...
}

// UpdateSlotRequest частичное обновление слота, nil-поля не изменяются
type UpdateSlotRequest struct {
	Date          *time.Time
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	MaxSlots      *int
	PriceOverride *float64
	Status        *string // available | blocked
	Notes         *string

	// ClearPriceOverride возвращает слоту базовую цену впечатления
	ClearPriceOverride bool
}

// ListSlotsRequest запрос списка слотов с пагинацией
type ListSlotsRequest struct {
	ExperienceID *string
	StartDate    *time.Time
	EndDate      *time.Time
	Status       *string
	Page         int // С 1
	Limit        int
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID             string   `json:"id"`
	ExperienceID   string   `json:"experienceId"`
	Date           string   `json:"date"`      // "2026-05-14"
	StartTime      string   `json:"startTime"` // "18:00"
	EndTime        string   `json:"endTime"`
	PriceOverride  *float64 `json:"priceOverride,omitempty"`
	BookedSlots    int      `json:"bookedSlots"`
	MaxSlots       int      `json:"maxSlots"`
	AvailableSpots int      `json:"availableSpots"`
	Status         string   `json:"status"`
	Notes          *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// SlotPageResponse страница списка слотов
type SlotPageResponse struct {
	Slots      []SlotResponse `json:"slots"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// CheckResponse результат проверки доступности слота
type CheckResponse struct {
	SlotID     string `json:"slotId"`
	GuestCount int    `json:"guestCount"`
	Available  bool   `json:"available"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:             s.ID,
		ExperienceID:   s.ExperienceID,
		Date:           s.Date.Format(domain.DateFormat),
		StartTime:      s.StartTime.String(),
		EndTime:        s.EndTime.String(),
		PriceOverride:  s.PriceOverride,
		BookedSlots:    s.BookedSlots,
		MaxSlots:       s.MaxSlots,
		AvailableSpots: s.RemainingCapacity(),
		Status:         string(s.Status()),
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}
	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(strings.ToLower(status))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParseWeekdays конвертирует названия дней недели в множество time.Weekday
func ParseWeekdays(days []string) (map[time.Weekday]struct{}, error) {
	result := make(map[time.Weekday]struct{}, len(days))
	for _, day := range days {
		found := false
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if strings.EqualFold(strings.TrimSpace(day), wd.String()) {
				result[wd] = struct{}{}
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidWeekday
		}
	}
	return result, nil
}
