package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"parkspot/internal/domain/auth"
	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/isodate"
	"parkspot/internal/pkg/patch"
)

// ValidationError carries the full list of human-readable reasons a
// payload was rejected, so clients see every field problem at once.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == errs.ErrDomainValidation
}

// bookingCandidate is the fully merged state a mutation wants to commit.
// The validator receives it whole, so check ordering is explicit rather
// than emergent from middleware execution order.
type bookingCandidate struct {
	excludeID *uuid.UUID // set on update, skipped during conflict comparison
	userID    uuid.UUID
	spotID    uuid.UUID
	slot      booking.TimeSlot
}

// bookingValidator runs the ordered admission pipeline for create/update.
// Steps: userId legality, field presence/merge, date well-formedness,
// chronology, no-past-start, referential integrity. The conflict check is
// not part of the pipeline; it runs afterwards against the returned
// candidate and reports a distinct fault.
type bookingValidator struct {
	users UserRepository
	spots SpotRepository
	clock clock.Clock
}

func newBookingValidator(users UserRepository, spots SpotRepository, clk clock.Clock) *bookingValidator {
	return &bookingValidator{users: users, spots: spots, clock: clk}
}

func (v *bookingValidator) validateCreate(ctx context.Context, scope auth.Scope, input BookingInput) (*bookingCandidate, error) {
	if err := checkUserIDLegality(scope, input.UserID); err != nil {
		return nil, err
	}

	var reasons []string

	ownerID := patch.Coalesce(input.UserID, scope.DefaultOwner())

	if input.SpotID == nil {
		reasons = append(reasons, "parkingSpotId is required")
	}
	if input.StartDate == nil {
		reasons = append(reasons, "startDate is required")
	}
	if input.EndDate == nil {
		reasons = append(reasons, "endDate is required")
	}

	start, end, dateReasons := parseDates(input.StartDate, input.EndDate)
	reasons = append(reasons, dateReasons...)

	if start != nil && end != nil {
		reasons = append(reasons, v.checkChronology(*start, *end, true)...)
	}

	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	slot, err := booking.NewTimeSlot(*start, *end)
	if err != nil {
		return nil, &ValidationError{Reasons: []string{booking.ErrInvalidTimeSlot.Error()}}
	}

	candidate := &bookingCandidate{
		userID: ownerID,
		spotID: *input.SpotID,
		slot:   slot,
	}

	if err := v.checkReferences(ctx, candidate.userID, candidate.spotID); err != nil {
		return nil, err
	}

	return candidate, nil
}

func (v *bookingValidator) validateUpdate(ctx context.Context, scope auth.Scope, existing *booking.Booking, input BookingInput) (*bookingCandidate, error) {
	if err := checkUserIDLegality(scope, input.UserID); err != nil {
		return nil, err
	}

	var reasons []string

	start, end, dateReasons := parseDates(input.StartDate, input.EndDate)
	reasons = append(reasons, dateReasons...)

	// Merge over the stored row before the remaining checks run.
	mergedStart := patch.Coalesce(start, existing.StartDate())
	mergedEnd := patch.Coalesce(end, existing.EndDate())
	startChanged := start != nil && !start.Equal(existing.StartDate())

	if len(dateReasons) == 0 {
		reasons = append(reasons, v.checkChronology(mergedStart, mergedEnd, startChanged)...)
	}

	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	slot, err := booking.NewTimeSlot(mergedStart, mergedEnd)
	if err != nil {
		return nil, &ValidationError{Reasons: []string{booking.ErrInvalidTimeSlot.Error()}}
	}

	id := existing.ID()
	candidate := &bookingCandidate{
		excludeID: &id,
		userID:    patch.Coalesce(input.UserID, existing.UserID()),
		spotID:    patch.Coalesce(input.SpotID, existing.SpotID()),
		slot:      slot,
	}

	if err := v.checkReferences(ctx, candidate.userID, candidate.spotID); err != nil {
		return nil, err
	}

	return candidate, nil
}

// checkUserIDLegality rejects callers assigning a booking to someone they
// may not act for. This is an authorization fault, not a validation one.
func checkUserIDLegality(scope auth.Scope, userID *uuid.UUID) error {
	if userID != nil && !scope.CanSetUserID(*userID) {
		return errs.ErrForeignUserID
	}
	return nil
}

func parseDates(startDate, endDate *string) (*time.Time, *time.Time, []string) {
	var reasons []string
	var start, end *time.Time

	if startDate != nil {
		t, err := isodate.Parse(*startDate)
		if err != nil {
			reasons = append(reasons, "Invalid startDate value")
		} else {
			start = &t
		}
	}
	if endDate != nil {
		t, err := isodate.Parse(*endDate)
		if err != nil {
			reasons = append(reasons, "Invalid endDate value")
		} else {
			end = &t
		}
	}

	return start, end, reasons
}

func (v *bookingValidator) checkChronology(start, end time.Time, enforcePast bool) []string {
	var reasons []string

	if !start.Before(end) {
		reasons = append(reasons, "startDate has to be before endDate")
	}
	if enforcePast && start.Before(v.clock.Now()) {
		reasons = append(reasons, "startDate cannot be in the past")
	}

	return reasons
}

// checkReferences requires both foreign keys to resolve to active rows.
// Soft-deleted users and spots are invalid targets, reported the same
// way as ids that never existed.
func (v *bookingValidator) checkReferences(ctx context.Context, userID, spotID uuid.UUID) error {
	var reasons []string

	if _, err := v.users.FindByID(ctx, userID); err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		reasons = append(reasons, "Invalid value of 'userId' parameter")
	}

	if _, err := v.spots.FindByID(ctx, spotID); err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		reasons = append(reasons, "Invalid value of 'parkingSpotId' parameter")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}

	return nil
}
