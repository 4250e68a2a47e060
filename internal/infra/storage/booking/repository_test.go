package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/ptr"
)

var (
	bookingCols = []string{
		"id", "user_id", "experience_id", "availability_id", "guest_count",
		"total_price", "service_fee", "taxes", "status", "payment_status",
		"special_requests", "cancellation_reason", "confirmed_at", "cancelled_at",
		"created_at", "updated_at",
	}
	testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func bookingRow(status domain.BookingStatus) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).AddRow(
		"booking-1", "user-1", "exp-1", "slot-1", 3,
		[]byte("339.00"), []byte("15.00"), []byte("24.00"), string(status), "pending",
		"window seat", nil, nil, nil,
		testNow, testNow,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,user_id,experience_id,availability_id,guest_count,total_price,service_fee,taxes,status,payment_status,special_requests)")).
		WithArgs(sqlmock.AnyArg(), "user-1", "exp-1", "slot-1", 3, 339.0, 15.0, 24.0, "pending", "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(testNow, testNow))

	created, err := repo.Create(context.Background(), &domain.Booking{
		UserID:         "user-1",
		ExperienceID:   "exp-1",
		AvailabilityID: "slot-1",
		GuestCount:     3,
		TotalPrice:     339,
		ServiceFee:     15,
		Taxes:          24,
		Status:         domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testNow, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b WHERE b.id = $1")).
		WithArgs("booking-1").
		WillReturnRows(bookingRow(domain.StatusConfirmed))

	b, err := repo.GetByID(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, 339.0, b.TotalPrice)
	assert.Equal(t, "window seat", *b.SpecialRequests)
	assert.Nil(t, b.CancelledAt)

	mock.ExpectQuery("FROM bookings b").WithArgs("missing").WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepo(t)

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	status := domain.StatusPending
	filter := domain.BookingFilter{
		Status:    &status,
		HostID:    ptr.Ptr("host-1"),
		StartDate: &start,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings b JOIN availability a ON a.id = b.availability_id " +
			"JOIN experiences e ON e.id = b.experience_id JOIN venues v ON v.id = e.venue_id " +
			"WHERE a.date >= $1 AND v.host_id = $2 AND b.status = $3 ORDER BY b.created_at DESC")).
		WithArgs(start, "host-1", "pending").
		WillReturnRows(bookingRow(domain.StatusPending))

	bookings, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	cancelledAt := testNow
	b := &domain.Booking{
		ID:                 "booking-1",
		GuestCount:         3,
		Status:             domain.StatusCancelled,
		PaymentStatus:      domain.PaymentRefunded,
		CancellationReason: ptr.Ptr("weather"),
		CancelledAt:        &cancelledAt,
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET guest_count = $1, status = $2, payment_status = $3")).
		WithArgs(3, "cancelled", "refunded", nil, "weather", nil, cancelledAt, "booking-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(testNow))

	updated, err := repo.Update(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, testNow, updated.UpdatedAt)

	mock.ExpectQuery("UPDATE bookings").WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	_, err = repo.Update(context.Background(), b)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetStats(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.status, COUNT(*) FROM bookings b JOIN experiences e ON e.id = b.experience_id JOIN venues v ON v.id = e.venue_id WHERE v.host_id = $1 GROUP BY b.status")).
		WithArgs("host-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 2).
			AddRow("confirmed", 1).
			AddRow("cancelled", 4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(b.total_price), 0) FROM bookings b JOIN experiences e ON e.id = b.experience_id JOIN venues v ON v.id = e.venue_id WHERE v.host_id = $1 AND b.payment_status = $2")).
		WithArgs("host-1", "paid").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow([]byte("678.00")))

	stats, err := repo.GetStats(context.Background(), ptr.Ptr("host-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalBookings)
	assert.Equal(t, int64(4), stats.StatusCounts[domain.StatusCancelled])
	assert.Equal(t, int64(0), stats.StatusCounts[domain.StatusCompleted])
	assert.Equal(t, 678.0, stats.TotalRevenue)
	require.NoError(t, mock.ExpectationsWereMet())
}
