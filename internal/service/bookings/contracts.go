package bookings

import (
	"context"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetStats(ctx context.Context, hostID *string) (*domain.BookingStats, error)
}

// SlotLedger интерфейс журнала вместимости слотов
type SlotLedger interface {
	Reserve(ctx context.Context, slotID string, guestCount int) (*domain.Slot, error)
	Release(ctx context.Context, slotID string, guestCount int) (*domain.Slot, error)
}

// CatalogRepository интерфейс чтения каталога впечатлений
type CatalogRepository interface {
	GetExperience(ctx context.Context, experienceID string) (*domain.Experience, error)
}

// StatsCache интерфейс кэша статистики бронирований
type StatsCache interface {
	Get(ctx context.Context, hostID *string) (*domain.BookingStats, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, hostID *string, generation int64, stats *domain.BookingStats) (bool, error)
	Invalidate(ctx context.Context) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
