package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ExperienceID string   `json:"experienceId" validate:"required,uuid"`
	GuestCount   int      `json:"guestCount" validate:"required,gt=0"`
	Days         []string `json:"days" validate:"omitempty,dive,oneof=monday tuesday"`
}

func TestDecodeJSON(t *testing.T) {
	var req sampleRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"experienceId":"x","guestCount":2}`))
	require.NoError(t, DecodeJSON(r, &req))
	assert.Equal(t, 2, req.GuestCount)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &req))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &req), ErrEmptyBody)
	assert.NoError(t, DecodeOptionalJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &req))
}

func TestValidate(t *testing.T) {
	valid := sampleRequest{ExperienceID: "7f1c1a52-5d3c-4a43-9a55-4c3a2f9f2a10", GuestCount: 1, Days: []string{"monday"}}
	assert.NoError(t, Validate(valid))

	err := Validate(sampleRequest{ExperienceID: "nope", GuestCount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ExperienceID")

	err = Validate(sampleRequest{ExperienceID: valid.ExperienceID, GuestCount: 1, Days: []string{"funday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, rec.Body.String())
}

func TestParseHelpers(t *testing.T) {
	date, err := ParseOptionalDate("2026-05-14")
	require.NoError(t, err)
	assert.Equal(t, 14, date.Day())

	date, err = ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseDate("14.05.2026")
	assert.Error(t, err)

	n, err := ParseOptionalInt("", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	_, err = OptionalUUID("123")
	assert.Error(t, err)
	assert.Nil(t, OptionalString("  "))
}
