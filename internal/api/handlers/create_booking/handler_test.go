package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kar1timmins/DineLocal/internal/api/middleware"
	createBooking "github.com/kar1timmins/DineLocal/internal/usecase/create_booking"
)

const (
	userID       = "2b8f8a6e-0c57-4f61-9a53-1f0f3c7f2f11"
	experienceID = "7f1c1a52-5d3c-4a43-9a55-4c3a2f9f2a10"
	slotID       = "c0a80101-0000-4000-8000-000000000001"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, userID)
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              "b-1",
		UserID:          userID,
		ExperienceID:    experienceID,
		AvailabilityID:  slotID,
		GuestCount:      3,
		BaseTotal:       300,
		ServiceFee:      15,
		Taxes:           24,
		TotalPrice:      339,
		Status:          "pending",
		PaymentStatus:   "pending",
		SlotBookedSlots: 3,
		SlotStatus:      "available",
		CreatedAt:       now,
		UpdatedAt:       now,
	}}
	h := NewHandler(uc, nopLogger{})

	body := fmt.Sprintf(`{"experienceId":%q,"availabilityId":%q,"guestCount":3}`, experienceID, slotID)
	rec := serve(h, newRequest(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, uc.got.UserID)
	assert.Equal(t, slotID, uc.got.SlotID)
	assert.JSONEq(t, `{
		"id":"b-1","userId":"`+userID+`","experienceId":"`+experienceID+`","availabilityId":"`+slotID+`",
		"guestCount":3,
		"price":{"baseTotal":300,"serviceFee":15,"taxes":24,"totalPrice":339},
		"status":"pending","paymentStatus":"pending",
		"availability":{"bookedSlots":3,"status":"available"},
		"createdAt":"2026-05-01T12:00:00Z","updatedAt":"2026-05-01T12:00:00Z"
	}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	validBody := fmt.Sprintf(`{"experienceId":%q,"availabilityId":%q,"guestCount":2}`, experienceID, slotID)

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `{`, status: http.StatusBadRequest},
		{name: "zero guests", body: fmt.Sprintf(`{"experienceId":%q,"availabilityId":%q,"guestCount":0}`, experienceID, slotID), status: http.StatusBadRequest},
		{name: "bad slot id", body: fmt.Sprintf(`{"experienceId":%q,"availabilityId":"x","guestCount":1}`, experienceID), status: http.StatusBadRequest},
		{name: "no capacity", body: validBody, err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "wrapped no capacity", body: validBody, err: fmt.Errorf("%w: lost race", createBooking.ErrSlotNotAvailable), status: http.StatusConflict},
		{name: "unknown user", body: validBody, err: createBooking.ErrUserNotFound, status: http.StatusNotFound},
		{name: "unknown slot", body: validBody, err: createBooking.ErrSlotNotFound, status: http.StatusNotFound},
		{name: "inactive", body: validBody, err: createBooking.ErrExperienceInactive, status: http.StatusBadRequest},
		{name: "out of range", body: validBody, err: createBooking.ErrGuestCountOutOfRange, status: http.StatusBadRequest},
		{name: "internal", body: validBody, err: fmt.Errorf("%w: boom", createBooking.ErrInternal), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := serve(h, newRequest(tt.body))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandler_RequiresUser(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))

	rec := serve(h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
