//go:build unit

package response_test

import (
	"testing"
	"time"

	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/domain/booking"
	"parkspot/internal/pkg/paging"
	"parkspot/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBooking(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	b, err := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
		// Zoned instants must come out in UTC
		bb.StartDate = time.Date(2030, 6, 1, 6, 0, 0, 0, ny)
		bb.EndDate = time.Date(2030, 6, 1, 8, 30, 0, 0, ny)
	}).BuildDomain()
	require.NoError(t, err)

	got := resdto.FromBooking(b)

	want := &resdto.BookingResponse{
		ID:            b.ID(),
		UserID:        b.UserID(),
		ParkingSpotID: b.SpotID(),
		StartDate:     "2030-06-01T10:00:00.000Z",
		EndDate:       "2030-06-01T12:30:00.000Z",
		CreatedDate:   got.CreatedDate,
		UpdatedDate:   got.UpdatedDate,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BookingResponse mismatch (-want +got):\n%s", diff)
	}
}

func TestFromBookingPage(t *testing.T) {
	a, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	meta := paging.Meta{Page: 1, PageSize: 10, Total: 12}
	page := resdto.FromBookingPage([]*booking.Booking{a, b}, meta)

	require.Len(t, page.Data, 2)
	assert.Equal(t, a.ID(), page.Data[0].ID)
	assert.Equal(t, b.ID(), page.Data[1].ID)
	assert.Equal(t, meta, page.Meta)
}

func TestFromBookingPageEmpty(t *testing.T) {
	page := resdto.FromBookingPage(nil, paging.Meta{PageSize: 10})

	// Empty pages must render as [] rather than null
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}
