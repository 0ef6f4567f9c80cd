//go:build unit

package isodate_test

import (
	"testing"
	"time"

	"parkspot/internal/pkg/isodate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Run("renders UTC with millisecond precision", func(t *testing.T) {
		in := time.Date(2030, 6, 1, 10, 30, 45, 123456789, time.UTC)
		assert.Equal(t, "2030-06-01T10:30:45.123Z", isodate.Format(in))
	})

	t.Run("converts zoned instants to UTC", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		in := time.Date(2030, 6, 1, 6, 0, 0, 0, ny)
		assert.Equal(t, "2030-06-01T10:00:00.000Z", isodate.Format(in))
	})

	t.Run("pads whole seconds", func(t *testing.T) {
		in := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		assert.Equal(t, "2030-01-02T03:04:05.000Z", isodate.Format(in))
	})
}

func TestParse(t *testing.T) {
	t.Run("accepts milliseconds and zulu", func(t *testing.T) {
		got, err := isodate.Parse("2030-06-01T10:30:45.123Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2030, 6, 1, 10, 30, 45, 123000000, time.UTC), got.UTC())
	})

	t.Run("accepts whole seconds", func(t *testing.T) {
		got, err := isodate.Parse("2030-06-01T10:30:45Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2030, 6, 1, 10, 30, 45, 0, time.UTC)))
	})

	t.Run("accepts numeric offsets", func(t *testing.T) {
		got, err := isodate.Parse("2030-06-01T12:30:45+02:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2030, 6, 1, 10, 30, 45, 0, time.UTC)))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "not-a-date", "2030-06-01", "2030-13-01T00:00:00Z"} {
			_, err := isodate.Parse(in)
			assert.ErrorIs(t, err, isodate.ErrInvalidDate, in)
		}
	})

	t.Run("round trip is stable", func(t *testing.T) {
		s := "2030-06-01T10:30:45.123Z"
		parsed, err := isodate.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, isodate.Format(parsed))
	})
}
