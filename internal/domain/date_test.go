package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", d.String())

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateOfTruncates(t *testing.T) {
	instant := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	d := DateOf(instant)
	assert.Equal(t, "2026-03-15", d.String())
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Time())
}

func TestDateOrdering(t *testing.T) {
	early, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	late, err := ParseDate("2026-03-16")
	require.NoError(t, err)

	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.True(t, early.Equal(early))
	assert.False(t, early.Equal(late))
	assert.False(t, early.IsZero())
	assert.True(t, Date{}.IsZero())
}
