package slot

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/ptr"
)

const (
	testSlotID       = "7d1f6a2e-3c4b-4e5f-9a8b-1c2d3e4f5a6b"
	testExperienceID = "0b6f4c1a-2d3e-4f5a-8b9c-0d1e2f3a4b5c"
)

var testDate = time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock, db
}

func slotRows(booked, max int, blocked bool) *sqlmock.Rows {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).AddRow(
		testSlotID, testExperienceID, testDate, "18:00:00", "20:00:00",
		nil, booked, max, blocked, nil, now, now,
	)
}

func TestRepository_Reserve(t *testing.T) {
	reserveSQL := regexp.QuoteMeta("UPDATE availability SET booked_slots = booked_slots + $1")
	selectSQL := regexp.QuoteMeta("SELECT id, experience_id")

	t.Run("success", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(reserveSQL).
			WithArgs(3, testSlotID, false, 3).
			WillReturnRows(slotRows(3, 4, false))

		slot, err := repo.Reserve(context.Background(), testSlotID, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, slot.BookedSlots)
		assert.Equal(t, domain.SlotStatusAvailable, slot.Status())
		assert.Equal(t, "18:00", slot.StartTime.String())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("condition guards capacity", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("is_blocked = $3 AND booked_slots < max_slots AND max_slots - booked_slots >= $4")).
			WithArgs(2, testSlotID, false, 2).
			WillReturnRows(sqlmock.NewRows(columns))
		mock.ExpectQuery(selectSQL).
			WithArgs(testSlotID).
			WillReturnRows(slotRows(3, 4, false))

		slot, err := repo.Reserve(context.Background(), testSlotID, 2)

		assert.Nil(t, slot)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slot not found", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(reserveSQL).WillReturnRows(sqlmock.NewRows(columns))
		mock.ExpectQuery(selectSQL).WithArgs(testSlotID).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Reserve(context.Background(), testSlotID, 1)

		assert.ErrorIs(t, err, ErrSlotNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Release(t *testing.T) {
	t.Run("clamps at zero", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SET booked_slots = GREATEST(booked_slots - $1, 0)")).
			WithArgs(5, testSlotID).
			WillReturnRows(slotRows(0, 4, false))

		slot, err := repo.Release(context.Background(), testSlotID, 5)

		require.NoError(t, err)
		assert.Equal(t, 0, slot.BookedSlots)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blocked stays blocked", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery("GREATEST").WillReturnRows(slotRows(1, 4, true))

		slot, err := repo.Release(context.Background(), testSlotID, 1)

		require.NoError(t, err)
		assert.Equal(t, domain.SlotStatusBlocked, slot.Status())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery("GREATEST").WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Release(context.Background(), testSlotID, 1)

		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	insertSQL := regexp.QuoteMeta("INSERT INTO availability")

	t.Run("success", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(insertSQL).WillReturnRows(slotRows(0, 4, false))

		slot, err := repo.Create(context.Background(), &domain.Slot{
			ExperienceID: testExperienceID,
			Date:         testDate,
			StartTime:    "18:00",
			EndTime:      "20:00",
			MaxSlots:     4,
		})

		require.NoError(t, err)
		assert.Equal(t, testSlotID, slot.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate key", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), &domain.Slot{ExperienceID: testExperienceID, MaxSlots: 4})

		assert.ErrorIs(t, err, ErrSlotAlreadyExists)
	})
}

func TestRepository_CreateBatch(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (experience_id, date, start_time) DO NOTHING RETURNING")).
		WillReturnRows(slotRows(0, 4, false))

	created, err := repo.CreateBatch(context.Background(), []*domain.Slot{
		{ExperienceID: testExperienceID, Date: testDate, StartTime: "18:00", EndTime: "20:00", MaxSlots: 4},
		{ExperienceID: testExperienceID, Date: testDate.AddDate(0, 0, 1), StartTime: "18:00", EndTime: "20:00", MaxSlots: 4},
	})

	require.NoError(t, err)
	assert.Len(t, created, 1)
	require.NoError(t, mock.ExpectationsWereMet())

	empty, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_Delete(t *testing.T) {
	deleteSQL := regexp.QuoteMeta("DELETE FROM availability WHERE booked_slots = $1 AND id = $2")

	t.Run("empty slot", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(deleteSQL).WithArgs(0, testSlotID).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), testSlotID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slot with bookings", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT").WithArgs(testSlotID).WillReturnRows(slotRows(2, 4, false))

		assert.ErrorIs(t, repo.Delete(context.Background(), testSlotID), ErrSlotHasBookings)
	})

	t.Run("missing slot", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(columns))

		assert.ErrorIs(t, repo.Delete(context.Background(), testSlotID), ErrSlotNotFound)
	})

	t.Run("referenced by cancelled bookings", func(t *testing.T) {
		repo, mock, _ := newRepo(t)

		mock.ExpectExec(deleteSQL).WillReturnError(&pq.Error{Code: "23503"})

		assert.ErrorIs(t, repo.Delete(context.Background(), testSlotID), ErrSlotHasBookings)
	})
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock, db := newRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := dbmetrics.Wrap(db, nil).BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := dbmetrics.WithTx(ctx, tx)

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability WHERE id = $1 FOR UPDATE")).
		WithArgs(testSlotID).
		WillReturnRows(slotRows(4, 4, false))

	slot, err := repo.GetByIDForUpdate(txCtx, testSlotID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status())

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability WHERE id = $1")).
		WithArgs(testSlotID).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByIDForUpdate(ctx, testSlotID)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock, _ := newRepo(t)

	status := domain.SlotStatusAvailable
	filter := domain.SlotFilter{
		ExperienceID: ptr.Ptr(testExperienceID),
		StartDate:    ptr.Ptr(testDate),
		Status:       &status,
		Limit:        10,
		Offset:       20,
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE experience_id = $1 AND date >= $2 AND is_blocked = $3 AND booked_slots < max_slots ORDER BY date ASC, start_time ASC LIMIT 10 OFFSET 20")).
		WithArgs(testExperienceID, testDate, false).
		WillReturnRows(slotRows(1, 4, false))

	slots, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, slots[0].BookedSlots)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM availability WHERE experience_id = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(31))

	total, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 31, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByKey(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM availability")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByKey(context.Background(), testExperienceID, testDate, "18:00")
	require.NoError(t, err)
	assert.True(t, exists)
}
