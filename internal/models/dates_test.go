package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	cases := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-15", 3, "2024-04-15"},
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-11-30", 2, "2025-01-30"},
		{"2024-01-31", 1, "2024-03-02"},
		{"2023-01-31", 1, "2023-03-03"},
		{"2024-02-29", 12, "2025-03-01"},
	}

	for _, tc := range cases {
		start, err := ParseDate(tc.start)
		require.NoError(t, err)
		assert.Equal(t, tc.want, AddMonths(start, tc.months).Format(DateLayout), "%s + %d", tc.start, tc.months)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/01/2024")
	assert.Error(t, err)
}

func TestFormatDatePtr(t *testing.T) {
	assert.Nil(t, FormatDatePtr(nil))

	d := NewDate(time.Date(2024, 4, 15, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-04-15", *FormatDatePtr(&d))
}
