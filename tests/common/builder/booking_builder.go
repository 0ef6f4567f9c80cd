//go:build unit || e2e

package builder

import (
	"time"

	"parkspot/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SpotID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	DeletedAt *time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SpotID:    uuid.New(),
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return booking.ReconstructBooking(
		b.ID, b.UserID, b.SpotID,
		slot,
		now, now,
		b.DeletedAt,
	), nil
}
