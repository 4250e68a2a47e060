package slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	slotRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/slot"
	"github.com/kar1timmins/DineLocal/internal/service/slots/models"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// Service журнал вместимости слотов.
// Единственный компонент, изменяющий booked_slots: Reserve и Release.
type Service struct {
	slotRepo    SlotRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Check проверяет, можно ли сейчас разместить guestCount гостей в слоте. Только чтение.
func (s *Service) Check(ctx context.Context, slotID string, guestCount int) (bool, error) {
	if guestCount <= 0 {
		return false, ErrInvalidGuestCount
	}

	slot, err := s.getSlot(ctx, "Check", slotID)
	if err != nil {
		return false, err
	}

	available := slot.CanAccommodate(guestCount)
	s.logger.Info("Check: slot id=%s guests=%d booked=%d/%d status=%s available=%t",
		slotID, guestCount, slot.BookedSlots, slot.MaxSlots, slot.Status(), available)
	return available, nil
}

// Reserve резервирует места в слоте. Проверка и увеличение счётчика выполняются
// одним условным UPDATE, внутри транзакции вызывающего (если она есть в контексте).
func (s *Service) Reserve(ctx context.Context, slotID string, guestCount int) (*domain.Slot, error) {
	if guestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}

	slot, err := s.slotRepo.Reserve(ctx, slotID, guestCount)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrCapacityExceeded):
			s.logger.Warn("Reserve: slot id=%s cannot take %d guests", slotID, guestCount)
			return nil, ErrCapacityExceeded
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Reserve: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Reserve: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reserve: slot id=%s reserved %d guests, booked=%d/%d status=%s",
		slotID, guestCount, slot.BookedSlots, slot.MaxSlots, slot.Status())
	return slot, nil
}

// Release возвращает места в слот. Счётчик не опускается ниже нуля, блокировка хоста сохраняется.
func (s *Service) Release(ctx context.Context, slotID string, guestCount int) (*domain.Slot, error) {
	if guestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}

	slot, err := s.slotRepo.Release(ctx, slotID, guestCount)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Release: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Release: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: slot id=%s released %d guests, booked=%d/%d status=%s",
		slotID, guestCount, slot.BookedSlots, slot.MaxSlots, slot.Status())
	return slot, nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, slotID string) (*models.SlotResponse, error) {
	slot, err := s.getSlot(ctx, "GetByID", slotID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSlot(slot), nil
}

// Create создает слот для впечатления
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: experience=%s date=%s time=%s-%s maxSlots=%d",
		req.ExperienceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.MaxSlots)

	// 1. Валидация входных данных
	if err := validateWindow(req.StartTime, req.EndTime, req.MaxSlots, req.PriceOverride); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if req.ExperienceID == "" || req.Date.IsZero() {
		return nil, ErrInvalidInput
	}

	// 2. Проверяем существование впечатления
	if err := s.ensureExperience(ctx, "Create", req.ExperienceID); err != nil {
		return nil, err
	}

	// 3. Проверяем уникальность (experience, date, startTime)
	exists, err := s.slotRepo.ExistsByKey(ctx, req.ExperienceID, req.Date, req.StartTime)
	if err != nil {
		s.logger.Error("Create: failed to check duplicates: %v", err)
		return nil, fmt.Errorf("%w: Create - check duplicates: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Create: slot already exists experience=%s date=%s time=%s",
			req.ExperienceID, req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotAlreadyExists
	}

	// 4. Создаем слот (уникальный индекс закрывает гонку между проверкой и вставкой)
	created, err := s.slotRepo.Create(ctx, &domain.Slot{
		ExperienceID:  req.ExperienceID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PriceOverride: req.PriceOverride,
		MaxSlots:      req.MaxSlots,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			return nil, ErrSlotAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%s created", created.ID)
	return models.FromDomainSlot(created), nil
}

// CreateBulk создает слоты на каждый день диапазона, пропуская исключённые дни недели
// и даты, на которые слот уже существует
func (s *Service) CreateBulk(ctx context.Context, req *models.CreateBulkSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("CreateBulk: experience=%s range=%s..%s time=%s-%s exclude=%v",
		req.ExperienceID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.ExcludeDays)

	// 1. Валидация входных данных
	if err := validateWindow(req.StartTime, req.EndTime, req.MaxSlots, req.PriceOverride); err != nil {
		s.logger.Warn("CreateBulk: validation failed: %v", err)
		return nil, err
	}
	if req.ExperienceID == "" {
		return nil, ErrInvalidInput
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if daysBetween(req.StartDate, req.EndDate) >= domain.MaxBulkRangeDays {
		return nil, ErrInvalidDateRange
	}

	excluded, err := models.ParseWeekdays(req.ExcludeDays)
	if err != nil {
		s.logger.Warn("CreateBulk: invalid exclude days %v", req.ExcludeDays)
		return nil, ErrInvalidInput
	}

	// 2. Проверяем существование впечатления
	if err := s.ensureExperience(ctx, "CreateBulk", req.ExperienceID); err != nil {
		return nil, err
	}

	// 3. Генерируем слоты по дням
	candidates := make([]*domain.Slot, 0)
	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		if _, skip := excluded[date.Weekday()]; skip {
			continue
		}
		candidates = append(candidates, &domain.Slot{
			ExperienceID:  req.ExperienceID,
			Date:          date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			PriceOverride: req.PriceOverride,
			MaxSlots:      req.MaxSlots,
		})
	}
	if len(candidates) == 0 {
		s.logger.Warn("CreateBulk: all dates excluded for experience=%s", req.ExperienceID)
		return nil, ErrNoNewSlots
	}

	// 4. Вставляем, существующие слоты пропускаются на уровне БД
	created, err := s.slotRepo.CreateBatch(ctx, candidates)
	if err != nil {
		s.logger.Error("CreateBulk: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBulk - repository error: %v", ErrInternal, err)
	}
	if len(created) == 0 {
		s.logger.Warn("CreateBulk: nothing new to create for experience=%s", req.ExperienceID)
		return nil, ErrNoNewSlots
	}

	sort.Slice(created, func(i, j int) bool {
		return created[i].Date.Before(created[j].Date)
	})

	s.logger.Info("CreateBulk: created %d of %d slots for experience=%s",
		len(created), len(candidates), req.ExperienceID)
	return models.FromDomainSlotList(created), nil
}

// List получает страницу слотов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotPageResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := domain.SlotFilter{
		ExperienceID: req.ExperienceID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	if req.Status != nil {
		status, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	total, err := s.slotRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	s.logger.Info("List: fetched %d of %d slots page=%d", len(slots), total, page)
	return &models.SlotPageResponse{
		Slots:      models.FromDomainSlotList(slots).Slots,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ListByExperience получает все слоты впечатления, опционально за период
func (s *Service) ListByExperience(ctx context.Context, experienceID string, startDate, endDate *time.Time) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{
		ExperienceID: &experienceID,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		s.logger.Error("ListByExperience: repository error for experience=%s: %v", experienceID, err)
		return nil, fmt.Errorf("%w: ListByExperience - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByExperience: fetched %d slots for experience=%s", len(slots), experienceID)
	return models.FromDomainSlotList(slots), nil
}

// Update редактирует слот под блокировкой строки.
// booked_slots не меняется: вместимость двигают только Reserve и Release.
func (s *Service) Update(ctx context.Context, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: slot id=%s", slotID)

	var result *domain.Slot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слот
		slot, err := s.slotRepo.GetByIDForUpdate(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Update: slot id=%s not found", slotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - get slot: %v", ErrInternal, err)
		}

		// 2. Применяем изменения
		if err := applyPatch(slot, req); err != nil {
			s.logger.Warn("Update: invalid patch for slot id=%s: %v", slotID, err)
			return err
		}

		// 3. Проверяем инварианты на итоговых значениях
		if err := validateWindow(slot.StartTime, slot.EndTime, slot.MaxSlots, slot.PriceOverride); err != nil {
			s.logger.Warn("Update: validation failed for slot id=%s: %v", slotID, err)
			return err
		}
		if slot.MaxSlots < slot.BookedSlots {
			s.logger.Warn("Update: maxSlots=%d below booked=%d for slot id=%s", slot.MaxSlots, slot.BookedSlots, slotID)
			return ErrInvalidCapacity
		}

		// 4. Сохраняем
		updated, err := s.slotRepo.Update(txCtx, slot)
		if err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotAlreadyExists):
				return ErrSlotAlreadyExists
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Update: failed for slot id=%s: %v", slotID, err)
		}
		return nil, err
	}

	s.logger.Info("Update: slot id=%s updated", slotID)
	return models.FromDomainSlot(result), nil
}

// Remove удаляет слот, если на нём нет зарезервированных мест
func (s *Service) Remove(ctx context.Context, slotID string) error {
	err := s.slotRepo.Delete(ctx, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Remove: slot id=%s not found", slotID)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotHasBookings):
			s.logger.Warn("Remove: slot id=%s has bookings", slotID)
			return ErrSlotHasBookings
		}
		s.logger.Error("Remove: repository error for slot id=%s: %v", slotID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: slot id=%s deleted", slotID)
	return nil
}

// Вспомогательные методы

func (s *Service) getSlot(ctx context.Context, method, slotID string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%s not found", method, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%s: %v", method, slotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return slot, nil
}

func (s *Service) ensureExperience(ctx context.Context, method, experienceID string) error {
	if _, err := s.catalogRepo.GetExperience(ctx, experienceID); err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			s.logger.Warn("%s: experience id=%s not found", method, experienceID)
			return ErrExperienceNotFound
		}
		s.logger.Error("%s: failed to get experience id=%s: %v", method, experienceID, err)
		return fmt.Errorf("%w: %s - get experience: %v", ErrInternal, method, err)
	}
	return nil
}

func applyPatch(slot *domain.Slot, req *models.UpdateSlotRequest) error {
	if req.Date != nil {
		slot.Date = *req.Date
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.MaxSlots != nil {
		slot.MaxSlots = *req.MaxSlots
	}
	if req.ClearPriceOverride {
		if req.PriceOverride != nil {
			return ErrInvalidInput
		}
		slot.PriceOverride = nil
	}
	if req.PriceOverride != nil {
		slot.PriceOverride = req.PriceOverride
	}
	if req.Notes != nil {
		slot.Notes = req.Notes
	}
	if req.Status != nil {
		status, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			return ErrInvalidStatus
		}
		switch status {
		case domain.SlotStatusBlocked:
			slot.IsBlocked = true
		case domain.SlotStatusAvailable:
			slot.IsBlocked = false
		default:
			// BOOKED вычисляется из счётчиков
			return ErrInvalidStatus
		}
	}
	return nil
}

func validateWindow(start, end types.TimeString, maxSlots int, priceOverride *float64) error {
	before, err := start.IsBefore(end)
	if err != nil {
		return ErrInvalidInput
	}
	if !before {
		return ErrInvalidTimeRange
	}
	if maxSlots <= 0 {
		return ErrInvalidCapacity
	}
	if priceOverride != nil && *priceOverride < 0 {
		return ErrInvalidInput
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
