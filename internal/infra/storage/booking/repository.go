package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/psqlbuilder"
)

var selectColumns = []string{
	"b.id",
	"b.user_id",
	"b.experience_id",
	"b.availability_id",
	"b.guest_count",
	"b.total_price",
	"b.service_fee",
	"b.taxes",
	"b.status",
	"b.payment_status",
	"b.special_requests",
	"b.cancellation_reason",
	"b.confirmed_at",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается внутри транзакции вместе с резервированием мест в слоте.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"experience_id",
			"availability_id",
			"guest_count",
			"total_price",
			"service_fee",
			"taxes",
			"status",
			"payment_status",
			"special_requests",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.ExperienceID,
			booking.AvailabilityID,
			booking.GuestCount,
			booking.TotalPrice,
			booking.ServiceFee,
			booking.Taxes,
			booking.Status,
			booking.PaymentStatus,
			booking.SpecialRequests,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции.
// Конкурентные переходы одного бронирования выполняются последовательно.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id string, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).From("bookings b")

	if filter.StartDate != nil || filter.EndDate != nil {
		builder = builder.Join("availability a ON a.id = b.availability_id")
		if filter.StartDate != nil {
			builder = builder.Where(squirrel.GtOrEq{"a.date": *filter.StartDate})
		}
		if filter.EndDate != nil {
			builder = builder.Where(squirrel.LtOrEq{"a.date": *filter.EndDate})
		}
	}
	builder = applyHostFilter(builder, filter.HostID)

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.PaymentStatus != nil {
		builder = builder.Where(squirrel.Eq{"b.payment_status": *filter.PaymentStatus})
	}
	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.ExperienceID != nil {
		builder = builder.Where(squirrel.Eq{"b.experience_id": *filter.ExperienceID})
	}

	query, args, err := builder.OrderBy("b.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования. Цена не перезаписывается.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("guest_count", booking.GuestCount).
		Set("status", booking.Status).
		Set("payment_status", booking.PaymentStatus).
		Set("special_requests", booking.SpecialRequests).
		Set("cancellation_reason", booking.CancellationReason).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

// GetStats считает бронирования по статусам и выручку по оплаченным бронированиям.
// hostID ограничивает выборку впечатлениями площадок хоста.
func (r *Repository) GetStats(ctx context.Context, hostID *string) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyHostFilter(
		psqlbuilder.Select("b.status", "COUNT(*)").From("bookings b"), hostID,
	).GroupBy("b.status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build count query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, countQuery, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - execute count query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.BookingStats{StatusCounts: make(map[domain.BookingStatus]int64)}
	for _, status := range domain.AllBookingStatuses {
		stats.StatusCounts[status] = 0
	}

	for rows.Next() {
		var (
			status domain.BookingStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStats - scan status count: %v", ErrScanRow, err)
		}
		stats.StatusCounts[status] = count
		stats.TotalBookings += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStats - iterate rows: %v", ErrScanRow, err)
	}

	revenueQuery, revenueArgs, err := applyHostFilter(
		psqlbuilder.Select("COALESCE(SUM(b.total_price), 0)").From("bookings b"), hostID,
	).Where(squirrel.Eq{"b.payment_status": domain.PaymentPaid}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build revenue query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, revenueQuery, revenueArgs...).Scan(&stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan revenue: %v", ErrScanRow, err)
	}
	stats.TotalRevenue = domain.Round2(stats.TotalRevenue)

	return stats, nil
}

// Вспомогательные методы

func applyHostFilter(builder squirrel.SelectBuilder, hostID *string) squirrel.SelectBuilder {
	if hostID == nil {
		return builder
	}
	return builder.
		Join("experiences e ON e.id = b.experience_id").
		Join("venues v ON v.id = e.venue_id").
		Where(squirrel.Eq{"v.host_id": *hostID})
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ExperienceID,
		&booking.AvailabilityID,
		&booking.GuestCount,
		&booking.TotalPrice,
		&booking.ServiceFee,
		&booking.Taxes,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.SpecialRequests,
		&booking.CancellationReason,
		&booking.ConfirmedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}
	return bookings, nil
}
