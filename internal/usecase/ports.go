package usecase

import (
	"context"

	"github.com/google/uuid"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/spot"
	"parkspot/internal/domain/user"
)

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/ports_mock.go -package=usecasemock

// BookingRepository is the persistence port for bookings. Every read
// excludes soft-deleted rows; a nil owner means an unrestricted read.
type BookingRepository interface {
	Find(ctx context.Context, owner *uuid.UUID, limit, offset int) ([]*booking.Booking, error)
	Count(ctx context.Context, owner *uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*booking.Booking, error)
	Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HasOverlap(ctx context.Context, spotID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error)
}

type UserRepository interface {
	FindByToken(ctx context.Context, token string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
}

type SpotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*spot.ParkingSpot, error)
}
