package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/kar1timmins/DineLocal/internal/domain"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	slotRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	ledger       SlotLedger
	catalogRepo  CatalogRepository
	statsCache   StatsCache
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	ledger SlotLedger,
	catalogRepo CatalogRepository,
	statsCache StatsCache,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		ledger:       ledger,
		catalogRepo:  catalogRepo,
		statsCache:   statsCache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Вставка бронирования и резервирование мест выполняются в одной транзакции:
// при ошибке любого шага не остаётся ни бронирования без мест, ни мест без бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, experience=%s, slot=%s, guests=%d",
		req.UserID, req.ExperienceID, req.SlotID, req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование пользователя
	exists, err := uc.catalogRepo.UserExists(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check user id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check user: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateBooking: user id=%s not found", req.UserID)
		return nil, ErrUserNotFound
	}

	// 3. Получаем впечатление
	experience, err := uc.catalogRepo.GetExperience(ctx, req.ExperienceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			uc.logger.Warn("CreateBooking: experience id=%s not found", req.ExperienceID)
			return nil, ErrExperienceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get experience id=%s: %v", req.ExperienceID, err)
		return nil, fmt.Errorf("%w: failed to get experience: %v", ErrInternal, err)
	}
	if !experience.IsActive {
		uc.logger.Warn("CreateBooking: experience id=%s is not active", req.ExperienceID)
		return nil, ErrExperienceInactive
	}

	// 4. Предварительная проверка доступности (окончательная - при резервировании)
	available, err := uc.ledger.Check(ctx, req.SlotID, req.GuestCount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to check slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
	if !available {
		uc.logger.Warn("CreateBooking: slot id=%s cannot take %d guests", req.SlotID, req.GuestCount)
		return nil, ErrSlotNotAvailable
	}

	// 5. Получаем слот для цены и проверки принадлежности
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	if err := validateSlotOwnership(slot, experience.ID); err != nil {
		uc.logger.Warn("CreateBooking: slot id=%s belongs to experience id=%s", slot.ID, slot.ExperienceID)
		return nil, err
	}

	// 6. Проверяем границы количества гостей
	if err := validateGuestCount(experience, req.GuestCount); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 7. Считаем цену: переопределение слота, если задано, иначе базовая цена впечатления
	price := domain.CalculatePrice(slot.PricePerGuest(experience.BasePrice), req.GuestCount)
	uc.logger.Info("CreateBooking: price base=%.2f fee=%.2f taxes=%.2f total=%.2f",
		price.BaseTotal, price.ServiceFee, price.Taxes, price.TotalPrice)

	var (
		result       *domain.Booking
		reservedSlot *domain.Slot
	)

	// 8. Сохраняем бронирование и резервируем места в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 8.1. Создаем бронирование в статусе pending
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:          req.UserID,
			ExperienceID:    req.ExperienceID,
			AvailabilityID:  req.SlotID,
			GuestCount:      req.GuestCount,
			TotalPrice:      price.TotalPrice,
			ServiceFee:      price.ServiceFee,
			Taxes:           price.Taxes,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
			SpecialRequests: req.SpecialRequests,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 8.2. Резервируем места условным обновлением слота
		reserved, err := uc.ledger.Reserve(txCtx, req.SlotID, req.GuestCount)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrCapacityExceeded):
				uc.logger.Warn("CreateBooking: slot id=%s was taken concurrently", req.SlotID)
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			case errors.Is(err, domain.ErrNotFound):
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to reserve slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		result = created
		reservedSlot = reserved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, slot booked=%d/%d",
		result.ID, reservedSlot.BookedSlots, reservedSlot.MaxSlots)

	// 9. После коммита: сбрасываем кэш статистики и публикуем событие
	if err := uc.statsCache.Invalidate(ctx); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate stats cache: %v", err)
	}
	event := domain.NewBookingEvent(result, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, domain.EventBookingCreated, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ExperienceID:    result.ExperienceID,
		AvailabilityID:  result.AvailabilityID,
		GuestCount:      result.GuestCount,
		BaseTotal:       price.BaseTotal,
		ServiceFee:      result.ServiceFee,
		Taxes:           result.Taxes,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		SpecialRequests: result.SpecialRequests,
		SlotBookedSlots: reservedSlot.BookedSlots,
		SlotStatus:      string(reservedSlot.Status()),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
