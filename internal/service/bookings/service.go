package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/kar1timmins/DineLocal/internal/domain"
	bookingRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/booking"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	"github.com/kar1timmins/DineLocal/internal/service/bookings/models"
	"github.com/kar1timmins/DineLocal/pkg/ptr"
)

// Service жизненный цикл бронирований.
// Каждый переход выполняется в транзакции под блокировкой строки бронирования,
// поэтому возврат мест в слот происходит ровно один раз.
type Service struct {
	bookingRepo  BookingRepository
	ledger       SlotLedger
	catalogRepo  CatalogRepository
	statsCache   StatsCache
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ledger SlotLedger,
	catalogRepo CatalogRepository,
	statsCache StatsCache,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		catalogRepo:  catalogRepo,
		statsCache:   statsCache,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListByUser получает бронирования гостя
func (s *Service) ListByUser(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	return s.List(ctx, &models.ListBookingsRequest{UserID: &userID})
}

// ListByHost получает бронирования впечатлений на площадках хоста
func (s *Service) ListByHost(ctx context.Context, hostID string) (*models.BookingListResponse, error) {
	return s.List(ctx, &models.ListBookingsRequest{HostID: &hostID})
}

// Confirm переводит бронирование из pending в confirmed
func (s *Service) Confirm(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: booking id=%s", bookingID)

	booking, err := s.mutate(ctx, "Confirm", bookingID, func(txCtx context.Context, b *domain.Booking) (string, error) {
		return s.applyStatus(txCtx, "Confirm", b, domain.StatusConfirmed, nil)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Complete переводит бронирование из confirmed в completed. Места в слоте остаются занятыми.
func (s *Service) Complete(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	s.logger.Info("Complete: booking id=%s", bookingID)

	booking, err := s.mutate(ctx, "Complete", bookingID, func(txCtx context.Context, b *domain.Booking) (string, error) {
		return s.applyStatus(txCtx, "Complete", b, domain.StatusCompleted, nil)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование в pending, confirmed или no_show и возвращает занятые им места в слот
func (s *Service) Cancel(ctx context.Context, bookingID string, reason *string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s", bookingID)

	booking, err := s.mutate(ctx, "Cancel", bookingID, func(txCtx context.Context, b *domain.Booking) (string, error) {
		return s.applyStatus(txCtx, "Cancel", b, domain.StatusCancelled, reason)
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Remove отменяет бронирование от имени гостя. Бронирования физически не удаляются.
func (s *Service) Remove(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	return s.Cancel(ctx, bookingID, ptr.Ptr(domain.DeletedByUserReason))
}

// Update частично обновляет бронирование.
// Смена статуса проходит те же проверки, что и Confirm/Complete/Cancel.
// Изменение количества гостей резервирует или возвращает разницу в слоте. Цена не пересчитывается.
func (s *Service) Update(ctx context.Context, bookingID string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: booking id=%s", bookingID)

	booking, err := s.mutate(ctx, "Update", bookingID, func(txCtx context.Context, b *domain.Booking) (string, error) {
		event := domain.EventBookingUpdated

		// 1. Количество гостей
		if req.GuestCount != nil && *req.GuestCount != b.GuestCount {
			if err := s.changeGuestCount(txCtx, b, *req.GuestCount); err != nil {
				return "", err
			}
		}

		// 2. Статус оплаты (ведётся платёжным сервисом, здесь только хранится)
		if req.PaymentStatus != nil {
			paymentStatus, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
			if err != nil {
				s.logger.Warn("Update: invalid payment status=%s for booking id=%s", *req.PaymentStatus, bookingID)
				return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			b.PaymentStatus = paymentStatus
		}

		if req.SpecialRequests != nil {
			b.SpecialRequests = req.SpecialRequests
		}

		// 3. Статус бронирования, повторная установка текущего статуса ничего не делает
		if req.Status != nil {
			status, err := models.ToDomainBookingStatus(*req.Status)
			if err != nil {
				s.logger.Warn("Update: invalid status=%s for booking id=%s", *req.Status, bookingID)
				return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if status != b.Status {
				event, err = s.applyStatus(txCtx, "Update", b, status, req.CancellationReason)
				if err != nil {
					return "", err
				}
			}
		}

		return event, nil
	})
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetStats возвращает статистику бронирований, опционально по хосту.
// Выручка учитывает только оплаченные бронирования.
func (s *Service) GetStats(ctx context.Context, hostID *string) (*models.BookingStatsResponse, error) {
	host := hostLabel(hostID)

	cached, found, err := s.statsCache.Get(ctx, hostID)
	if err != nil {
		s.logger.Warn("GetStats: cache read failed for host=%s: %v", host, err)
	}
	if found {
		s.logger.Info("GetStats: cache hit for host=%s", host)
		return models.FromDomainStats(cached), nil
	}

	// Поколение читается до запроса в БД: если бронирования изменятся раньше записи в кэш,
	// устаревшая статистика туда не попадёт
	generation, genErr := s.statsCache.Generation(ctx)
	if genErr != nil {
		s.logger.Warn("GetStats: cache generation read failed for host=%s: %v", host, genErr)
	}

	stats, err := s.bookingRepo.GetStats(ctx, hostID)
	if err != nil {
		s.logger.Error("GetStats: repository error for host=%s: %v", host, err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	if genErr == nil {
		stored, err := s.statsCache.Set(ctx, hostID, generation, stats)
		switch {
		case err != nil:
			s.logger.Warn("GetStats: cache write failed for host=%s: %v", host, err)
		case !stored:
			s.logger.Info("GetStats: bookings changed during read, cache write skipped for host=%s", host)
		}
	}

	s.logger.Info("GetStats: host=%s total=%d revenue=%.2f", host, stats.TotalBookings, stats.TotalRevenue)
	return models.FromDomainStats(stats), nil
}

// Вспомогательные методы

// mutate блокирует бронирование, применяет fn и сохраняет результат в одной транзакции.
// fn возвращает ключ события, которое публикуется после коммита.
func (s *Service) mutate(
	ctx context.Context,
	method string,
	bookingID string,
	fn func(txCtx context.Context, b *domain.Booking) (string, error),
) (*domain.Booking, error) {
	var (
		result *domain.Booking
		event  string
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("%s: booking id=%s not found", method, bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - get booking: %v", ErrInternal, method, err)
		}

		event, err = fn(txCtx, booking)
		if err != nil {
			return err
		}

		updated, err := s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - update booking: %v", ErrInternal, method, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: failed for booking id=%s: %v", method, bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("%s: booking id=%s status=%s guests=%d", method, result.ID, result.Status, result.GuestCount)
	s.afterCommit(ctx, method, result, event)
	return result, nil
}

// applyStatus выполняет переход в target по правилам конечного автомата
func (s *Service) applyStatus(
	txCtx context.Context,
	method string,
	b *domain.Booking,
	target domain.BookingStatus,
	reason *string,
) (string, error) {
	switch target {
	case domain.StatusConfirmed:
		if !b.CanBeConfirmed() {
			s.logger.Warn("%s: booking id=%s cannot be confirmed, status=%s", method, b.ID, b.Status)
			return "", ErrCannotConfirm
		}
		b.Confirm(s.timeProvider.Now())
		return domain.EventBookingConfirmed, nil

	case domain.StatusCompleted:
		if !b.CanBeCompleted() {
			s.logger.Warn("%s: booking id=%s cannot be completed, status=%s", method, b.ID, b.Status)
			return "", ErrCannotComplete
		}
		b.Complete()
		return domain.EventBookingCompleted, nil

	case domain.StatusCancelled:
		if !b.CanBeCancelled() {
			s.logger.Warn("%s: booking id=%s cannot be cancelled, status=%s", method, b.ID, b.Status)
			return "", ErrCannotCancel
		}
		// Возвращаем сохранённое количество гостей, а не пересчитанное.
		// Гости no_show уже не учитываются в слоте.
		if b.HoldsCapacity() {
			if _, err := s.ledger.Release(txCtx, b.AvailabilityID, b.GuestCount); err != nil {
				return "", fmt.Errorf("%w: %s - release slot: %v", ErrInternal, method, err)
			}
		}
		b.Cancel(s.timeProvider.Now(), reason)
		return domain.EventBookingCancelled, nil
	}

	// pending только при создании, no_show выставляет внешний процесс
	s.logger.Warn("%s: status %s cannot be set for booking id=%s", method, target, b.ID)
	return "", ErrInvalidStatusTransition
}

// changeGuestCount меняет количество гостей активного бронирования, двигая разницу в слоте
func (s *Service) changeGuestCount(txCtx context.Context, b *domain.Booking, guestCount int) error {
	if guestCount <= 0 {
		return ErrInvalidGuestCount
	}
	if !b.IsActive() {
		s.logger.Warn("Update: booking id=%s is %s, guest count is frozen", b.ID, b.Status)
		return ErrBookingNotActive
	}

	experience, err := s.catalogRepo.GetExperience(txCtx, b.ExperienceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			return ErrExperienceNotFound
		}
		return fmt.Errorf("%w: Update - get experience: %v", ErrInternal, err)
	}
	if !experience.AcceptsGuestCount(guestCount) {
		s.logger.Warn("Update: guests=%d outside [%d, %d] for booking id=%s",
			guestCount, experience.MinGuests, experience.MaxGuests, b.ID)
		return ErrGuestCountOutOfRange
	}

	delta := guestCount - b.GuestCount
	if delta > 0 {
		if _, err := s.ledger.Reserve(txCtx, b.AvailabilityID, delta); err != nil {
			if errors.Is(err, domain.ErrCapacityExceeded) {
				s.logger.Warn("Update: slot id=%s cannot take %d more guests", b.AvailabilityID, delta)
				return ErrCapacityExceeded
			}
			return fmt.Errorf("%w: Update - reserve slot: %v", ErrInternal, err)
		}
	} else {
		if _, err := s.ledger.Release(txCtx, b.AvailabilityID, -delta); err != nil {
			return fmt.Errorf("%w: Update - release slot: %v", ErrInternal, err)
		}
	}

	b.GuestCount = guestCount
	return nil
}

// afterCommit сбрасывает кэш статистики и публикует событие. Ошибки только логируются.
func (s *Service) afterCommit(ctx context.Context, method string, b *domain.Booking, event string) {
	if err := s.statsCache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate stats cache: %v", method, err)
	}

	if event == "" {
		return
	}
	if err := s.publisher.Publish(ctx, event, domain.NewBookingEvent(b, s.timeProvider.Now())); err != nil {
		s.logger.Warn("%s: failed to publish %s for booking id=%s: %v", method, event, b.ID, err)
	}
}

func hostLabel(hostID *string) string {
	if hostID == nil {
		return "all"
	}
	return *hostID
}
