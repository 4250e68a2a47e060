package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/psqlbuilder"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

const (
	tableName = "availability"

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var columns = []string{
	"id",
	"experience_id",
	"date",
	"start_time",
	"end_time",
	"price_override",
	"booked_slots",
	"max_slots",
	"is_blocked",
	"notes",
	"created_at",
	"updated_at",
}

var returningColumns = "RETURNING " + strings.Join(columns, ", ")

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий слотов доступности.
// Счётчик booked_slots изменяется только условными UPDATE (Reserve/Release),
// поэтому проверка вместимости и изменение выполняются одной атомарной операцией.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "experience_id", "date", "start_time", "end_time", "price_override", "max_slots", "is_blocked", "notes").
		Values(slot.ID, slot.ExperienceID, slot.Date, slot.StartTime, slot.EndTime, slot.PriceOverride, slot.MaxSlots, slot.IsBlocked, slot.Notes).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// CreateBatch вставляет набор слотов, пропуская уже существующие (experience_id, date, start_time).
// Возвращает только реально созданные слоты.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(tableName).
		Columns("id", "experience_id", "date", "start_time", "end_time", "price_override", "max_slots", "is_blocked", "notes")
	for _, s := range slots {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		builder = builder.Values(s.ID, s.ExperienceID, s.Date, s.StartTime, s.EndTime, s.PriceOverride, s.MaxSlots, s.IsBlocked, s.Notes)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (experience_id, date, start_time) DO NOTHING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает слот и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Slot, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id string, lock bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ExistsByKey проверяет наличие слота с тем же впечатлением, датой и временем начала
func (r *Repository) ExistsByKey(ctx context.Context, experienceID string, date time.Time, startTime types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"experience_id": experienceID, "date": date, "start_time": startTime}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByKey - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByKey - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// List возвращает слоты по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := applyFilter(psqlbuilder.Select(columns...).From(tableName), filter).
		OrderBy("date ASC", "start_time ASC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Count возвращает количество слотов по фильтру (без учета пагинации)
func (r *Repository) Count(ctx context.Context, filter domain.SlotFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(tableName), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return total, nil
}

// Update сохраняет редактируемые поля слота. Счётчик booked_slots здесь не изменяется.
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("date", slot.Date).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("price_override", slot.PriceOverride).
		Set("max_slots", slot.MaxSlots).
		Set("is_blocked", slot.IsBlocked).
		Set("notes", slot.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет слот только если на нём нет зарезервированных мест
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "booked_slots": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		// На слот ссылаются отменённые бронирования, история не удаляется
		if isForeignKeyViolation(err) {
			return ErrSlotHasBookings
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Строка не удалена: либо слота нет, либо на нём есть брони
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrSlotHasBookings
}

// Reserve атомарно увеличивает booked_slots на guestCount, если слот не заблокирован
// и в нём достаточно свободных мест. Проверка и изменение выполняются одним UPDATE,
// поэтому конкурентные резервирования не могут превысить max_slots.
func (r *Repository) Reserve(ctx context.Context, id string, guestCount int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("booked_slots", squirrel.Expr("booked_slots + ?", guestCount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_blocked": false}).
		Where("booked_slots < max_slots").
		Where(squirrel.Expr("max_slots - booked_slots >= ?", guestCount)).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Условие не выполнено: отличаем отсутствующий слот от нехватки мест
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCapacityExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Release атомарно уменьшает booked_slots на guestCount, не опускаясь ниже нуля.
// Флаг блокировки не изменяется.
func (r *Repository) Release(ctx context.Context, id string, guestCount int) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("booked_slots", squirrel.Expr("GREATEST(booked_slots - ?, 0)", guestCount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Вспомогательные методы

func applyFilter(builder squirrel.SelectBuilder, filter domain.SlotFilter) squirrel.SelectBuilder {
	if filter.ExperienceID != nil {
		builder = builder.Where(squirrel.Eq{"experience_id": *filter.ExperienceID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Status != nil {
		switch *filter.Status {
		case domain.SlotStatusBlocked:
			builder = builder.Where(squirrel.Eq{"is_blocked": true})
		case domain.SlotStatusBooked:
			builder = builder.Where(squirrel.Eq{"is_blocked": false}).Where("booked_slots >= max_slots")
		case domain.SlotStatusAvailable:
			builder = builder.Where(squirrel.Eq{"is_blocked": false}).Where("booked_slots < max_slots")
		}
	}
	return builder
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                 domain.Slot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.ExperienceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.PriceOverride,
		&slot.BookedSlots,
		&slot.MaxSlots,
		&slot.IsBlocked,
		&slot.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}
	return slots, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
