package slots

import (
	"context"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error)
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Slot, error)
	ExistsByKey(ctx context.Context, experienceID string, date time.Time, startTime types.TimeString) (bool, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Count(ctx context.Context, filter domain.SlotFilter) (int, error)
	Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	Delete(ctx context.Context, id string) error
	Reserve(ctx context.Context, id string, guestCount int) (*domain.Slot, error)
	Release(ctx context.Context, id string, guestCount int) (*domain.Slot, error)
}

// CatalogRepository интерфейс чтения каталога впечатлений
type CatalogRepository interface {
	GetExperience(ctx context.Context, experienceID string) (*domain.Experience, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
