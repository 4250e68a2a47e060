package create_booking

import (
	"context"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс чтения слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
}

// SlotLedger интерфейс журнала вместимости слотов
type SlotLedger interface {
	Check(ctx context.Context, slotID string, guestCount int) (bool, error)
	Reserve(ctx context.Context, slotID string, guestCount int) (*domain.Slot, error)
}

// CatalogRepository интерфейс каталога пользователей и впечатлений
type CatalogRepository interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	GetExperience(ctx context.Context, experienceID string) (*domain.Experience, error)
}

// StatsCache интерфейс кэша статистики бронирований
type StatsCache interface {
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
