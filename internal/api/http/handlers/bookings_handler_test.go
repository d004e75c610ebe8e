package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

func TestParseBookingDateAcceptsToday(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	date, err := parseBookingDate(today)
	require.NoError(t, err)
	assert.Equal(t, today, date.String())
}

func TestParseBookingDateAcceptsFutureDate(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	_, err := parseBookingDate(tomorrow)
	require.NoError(t, err)
}

func TestParseBookingDateRejectsPastDate(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := parseBookingDate(yesterday)
	requireFieldError(t, err, "booking_date", "Booking date cannot be in the past.")
}

func TestParseBookingDateRejectsMissingOrMalformed(t *testing.T) {
	cases := []struct {
		input   string
		message string
	}{
		{"", "The booking date field is required."},
		{"not-a-date", "The booking date is not a valid date."},
		{"2026-13-40", "The booking date is not a valid date."},
	}
	for _, tc := range cases {
		_, err := parseBookingDate(tc.input)
		requireFieldError(t, err, "booking_date", tc.message)
	}
}

func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	messages, ok := domainErr.Details[field].([]string)
	require.True(t, ok, "missing %s detail", field)
	assert.Contains(t, messages, message)
}
