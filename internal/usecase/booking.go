package usecase

import (
	"context"

	"github.com/google/uuid"

	"parkspot/internal/domain/auth"
	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/paging"
)

// BookingInput is the raw mutation payload. Every field is optional at
// this layer: create fills the owner from the scope and rejects missing
// fields in the pipeline, update merges over the stored row. Dates stay
// strings until the pipeline parses them, so malformed values surface as
// validation reasons rather than transport errors.
type BookingInput struct {
	UserID    *uuid.UUID
	SpotID    *uuid.UUID
	StartDate *string
	EndDate   *string
}

type BookingPage struct {
	Bookings []*booking.Booking
	Meta     paging.Meta
}

//go:generate mockgen -source=booking.go -destination=../../tests/mock/usecase/booking_mock.go -package=usecasemock

type BookingUseCase interface {
	List(ctx context.Context, scope auth.Scope, page paging.Page) (*BookingPage, error)
	Get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*booking.Booking, error)
	Create(ctx context.Context, scope auth.Scope, input BookingInput) (*booking.Booking, error)
	Update(ctx context.Context, scope auth.Scope, id uuid.UUID, input BookingInput) (*booking.Booking, error)
	Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	bookings  BookingRepository
	validator *bookingValidator
}

func NewBookingUseCase(
	bookings BookingRepository,
	users UserRepository,
	spots SpotRepository,
	clk clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookings:  bookings,
		validator: newBookingValidator(users, spots, clk),
	}
}

func (u *bookingUseCaseImpl) List(ctx context.Context, scope auth.Scope, page paging.Page) (*BookingPage, error) {
	owner := scope.OwnerFilter()

	rows, err := u.bookings.Find(ctx, owner, page.Limit(), page.Offset())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	total, err := u.bookings.Count(ctx, owner)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &BookingPage{Bookings: rows, Meta: page.MetaFor(total)}, nil
}

func (u *bookingUseCaseImpl) Get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*booking.Booking, error) {
	return u.loadScoped(ctx, scope, id)
}

func (u *bookingUseCaseImpl) Create(ctx context.Context, scope auth.Scope, input BookingInput) (*booking.Booking, error) {
	candidate, err := u.validator.validateCreate(ctx, scope, input)
	if err != nil {
		return nil, err
	}

	if err := u.checkConflict(ctx, candidate); err != nil {
		return nil, err
	}

	created, err := u.bookings.Create(ctx, booking.NewBooking(candidate.userID, candidate.spotID, candidate.slot))
	if err != nil {
		// The store's exclusion constraint is the backstop for writers
		// that both passed the overlap read.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrBookingConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return created, nil
}

func (u *bookingUseCaseImpl) Update(ctx context.Context, scope auth.Scope, id uuid.UUID, input BookingInput) (*booking.Booking, error) {
	existing, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	candidate, err := u.validator.validateUpdate(ctx, scope, existing, input)
	if err != nil {
		return nil, err
	}

	if err := u.checkConflict(ctx, candidate); err != nil {
		return nil, err
	}

	updated, err := u.bookings.Update(ctx, existing.Reassign(candidate.userID, candidate.spotID, candidate.slot))
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrBookingConflict
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return updated, nil
}

func (u *bookingUseCaseImpl) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	existing, err := u.loadScoped(ctx, scope, id)
	if err != nil {
		return err
	}

	if err := u.bookings.SoftDelete(ctx, existing.ID()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrBookingNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil
}

// loadScoped fetches one booking under the caller's read filter. A row
// owned by another user comes back as not-found, never as forbidden.
func (u *bookingUseCaseImpl) loadScoped(ctx context.Context, scope auth.Scope, id uuid.UUID) (*booking.Booking, error) {
	b, err := u.bookings.FindByID(ctx, id, scope.OwnerFilter())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (u *bookingUseCaseImpl) checkConflict(ctx context.Context, candidate *bookingCandidate) error {
	conflict, err := u.bookings.HasOverlap(ctx, candidate.spotID, candidate.slot, candidate.excludeID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if conflict {
		return errs.ErrBookingConflict
	}
	return nil
}
