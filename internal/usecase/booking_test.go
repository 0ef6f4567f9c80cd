//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkspot/internal/domain/auth"
	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/isodate"
	"parkspot/internal/pkg/paging"
	"parkspot/internal/usecase"
	"parkspot/tests/common/builder"
	usecasemock "parkspot/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type BookingUseCaseTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	bookings *usecasemock.MockBookingRepository
	users    *usecasemock.MockUserRepository
	spots    *usecasemock.MockSpotRepository
	clk      *clock.MockClock
	uc       usecase.BookingUseCase
}

func (s *BookingUseCaseTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bookings = usecasemock.NewMockBookingRepository(s.ctrl)
	s.users = usecasemock.NewMockUserRepository(s.ctrl)
	s.spots = usecasemock.NewMockSpotRepository(s.ctrl)
	s.clk = clock.NewMockClock(testNow)
	s.uc = usecase.NewBookingUseCase(s.bookings, s.users, s.spots, s.clk)
}

func (s *BookingUseCaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(BookingUseCaseTestSuite))
}

func (s *BookingUseCaseTestSuite) expectActiveRefs(userID, spotID uuid.UUID) {
	caller := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = userID }).BuildDomain()
	spotRow := builder.NewSpotBuilder().With(func(b *builder.SpotBuilder) { b.ID = spotID }).BuildDomain()
	s.users.EXPECT().FindByID(gomock.Any(), userID).Return(caller, nil)
	s.spots.EXPECT().FindByID(gomock.Any(), spotID).Return(spotRow, nil)
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errors.New("no rows in result set"), infra.KindNotFound)
}

func strPtr(s string) *string { return &s }

func validInput(spotID uuid.UUID) usecase.BookingInput {
	return usecase.BookingInput{
		SpotID:    &spotID,
		StartDate: strPtr(isodate.Format(testNow.Add(24 * time.Hour))),
		EndDate:   strPtr(isodate.Format(testNow.Add(26 * time.Hour))),
	}
}

func (s *BookingUseCaseTestSuite) TestList() {
	s.Run("standard caller lists only own rows", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		row, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		s.bookings.EXPECT().
			Find(gomock.Any(), ownerMatcher(callerID), 10, 0).
			Return([]*booking.Booking{row}, nil)
		s.bookings.EXPECT().
			Count(gomock.Any(), ownerMatcher(callerID)).
			Return(int64(1), nil)

		page, err := s.uc.List(context.Background(), scope, paging.New(0, 10))
		s.Require().NoError(err)
		s.Len(page.Bookings, 1)
		s.Equal(paging.Meta{Page: 0, PageSize: 10, Total: 1}, page.Meta)
	})

	s.Run("admin lists unrestricted", func() {
		scope := auth.AdminScope(uuid.New())

		s.bookings.EXPECT().
			Find(gomock.Any(), gomock.Nil(), 25, 50).
			Return([]*booking.Booking{}, nil)
		s.bookings.EXPECT().
			Count(gomock.Any(), gomock.Nil()).
			Return(int64(120), nil)

		page, err := s.uc.List(context.Background(), scope, paging.New(2, 25))
		s.Require().NoError(err)
		s.Empty(page.Bookings)
		s.Equal(int64(120), page.Meta.Total)
		s.Equal(2, page.Meta.Page)
	})

	s.Run("repository failure surfaces as database error", func() {
		scope := auth.AdminScope(uuid.New())

		s.bookings.EXPECT().
			Find(gomock.Any(), gomock.Nil(), 10, 0).
			Return(nil, infra.WrapRepoErr("query failed", errors.New("boom")))

		_, err := s.uc.List(context.Background(), scope, paging.New(0, 10))
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
	})
}

func (s *BookingUseCaseTestSuite) TestGet() {
	s.Run("returns scoped row", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		row, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		s.bookings.EXPECT().
			FindByID(gomock.Any(), row.ID(), ownerMatcher(callerID)).
			Return(row, nil)

		got, err := s.uc.Get(context.Background(), scope, row.ID())
		s.Require().NoError(err)
		s.Equal(row.ID(), got.ID())
	})

	s.Run("foreign row reads as not found", func() {
		scope := auth.OwnerScope(uuid.New())
		id := uuid.New()

		s.bookings.EXPECT().
			FindByID(gomock.Any(), id, gomock.Any()).
			Return(nil, notFoundErr())

		_, err := s.uc.Get(context.Background(), scope, id)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})
}

func (s *BookingUseCaseTestSuite) TestCreate() {
	s.Run("owner defaults to the caller", func() {
		callerID := uuid.New()
		spotID := uuid.New()
		scope := auth.OwnerScope(callerID)
		input := validInput(spotID)

		s.expectActiveRefs(callerID, spotID)
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), spotID, gomock.Any(), gomock.Nil()).
			Return(false, nil)
		s.bookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				s.Equal(callerID, b.UserID())
				s.Equal(spotID, b.SpotID())
				return b, nil
			})

		created, err := s.uc.Create(context.Background(), scope, input)
		s.Require().NoError(err)
		s.Equal(callerID, created.UserID())
	})

	s.Run("admin may create for another user", func() {
		adminID := uuid.New()
		targetID := uuid.New()
		spotID := uuid.New()
		scope := auth.AdminScope(adminID)
		input := validInput(spotID)
		input.UserID = &targetID

		s.expectActiveRefs(targetID, spotID)
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), spotID, gomock.Any(), gomock.Nil()).
			Return(false, nil)
		s.bookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				return b, nil
			})

		created, err := s.uc.Create(context.Background(), scope, input)
		s.Require().NoError(err)
		s.Equal(targetID, created.UserID())
	})

	s.Run("standard caller may not book for someone else", func() {
		scope := auth.OwnerScope(uuid.New())
		otherID := uuid.New()
		input := validInput(uuid.New())
		input.UserID = &otherID

		_, err := s.uc.Create(context.Background(), scope, input)
		s.ErrorIs(err, errs.ErrForeignUserID)
	})

	s.Run("missing fields accumulate reasons", func() {
		scope := auth.OwnerScope(uuid.New())

		_, err := s.uc.Create(context.Background(), scope, usecase.BookingInput{})

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Equal([]string{
			"parkingSpotId is required",
			"startDate is required",
			"endDate is required",
		}, vErr.Reasons)
	})

	s.Run("malformed dates are reported per field", func() {
		scope := auth.OwnerScope(uuid.New())
		spotID := uuid.New()
		input := usecase.BookingInput{
			SpotID:    &spotID,
			StartDate: strPtr("yesterday"),
			EndDate:   strPtr("tomorrow"),
		}

		_, err := s.uc.Create(context.Background(), scope, input)

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal([]string{"Invalid startDate value", "Invalid endDate value"}, vErr.Reasons)
	})

	s.Run("start at or after end is rejected", func() {
		scope := auth.OwnerScope(uuid.New())
		spotID := uuid.New()
		at := isodate.Format(testNow.Add(24 * time.Hour))
		input := usecase.BookingInput{
			SpotID:    &spotID,
			StartDate: strPtr(at),
			EndDate:   strPtr(at),
		}

		_, err := s.uc.Create(context.Background(), scope, input)

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Contains(vErr.Reasons, "startDate has to be before endDate")
	})

	s.Run("past start is rejected", func() {
		scope := auth.OwnerScope(uuid.New())
		spotID := uuid.New()
		input := usecase.BookingInput{
			SpotID:    &spotID,
			StartDate: strPtr(isodate.Format(testNow.Add(-time.Hour))),
			EndDate:   strPtr(isodate.Format(testNow.Add(time.Hour))),
		}

		_, err := s.uc.Create(context.Background(), scope, input)

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal([]string{"startDate cannot be in the past"}, vErr.Reasons)
	})

	s.Run("unknown references are validation reasons", func() {
		callerID := uuid.New()
		spotID := uuid.New()
		scope := auth.OwnerScope(callerID)
		input := validInput(spotID)

		s.users.EXPECT().FindByID(gomock.Any(), callerID).Return(nil, notFoundErr())
		s.spots.EXPECT().FindByID(gomock.Any(), spotID).Return(nil, notFoundErr())

		_, err := s.uc.Create(context.Background(), scope, input)

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal([]string{
			"Invalid value of 'userId' parameter",
			"Invalid value of 'parkingSpotId' parameter",
		}, vErr.Reasons)
	})

	s.Run("overlapping slot is a conflict", func() {
		callerID := uuid.New()
		spotID := uuid.New()
		scope := auth.OwnerScope(callerID)
		input := validInput(spotID)

		s.expectActiveRefs(callerID, spotID)
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), spotID, gomock.Any(), gomock.Nil()).
			Return(true, nil)

		_, err := s.uc.Create(context.Background(), scope, input)
		s.ErrorIs(err, errs.ErrBookingConflict)
	})

	s.Run("exclusion constraint race maps to conflict", func() {
		callerID := uuid.New()
		spotID := uuid.New()
		scope := auth.OwnerScope(callerID)
		input := validInput(spotID)

		s.expectActiveRefs(callerID, spotID)
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), spotID, gomock.Any(), gomock.Nil()).
			Return(false, nil)
		s.bookings.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("overlap", errors.New("exclusion"), infra.KindConflict))

		_, err := s.uc.Create(context.Background(), scope, input)
		s.ErrorIs(err, errs.ErrBookingConflict)
	})
}

func (s *BookingUseCaseTestSuite) TestUpdate() {
	s.Run("partial payload merges over the stored row", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		newEnd := existing.EndDate().Add(time.Hour)
		input := usecase.BookingInput{EndDate: strPtr(isodate.Format(newEnd))}

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), ownerMatcher(callerID)).
			Return(existing, nil)
		s.expectActiveRefs(callerID, existing.SpotID())
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), existing.SpotID(), gomock.Any(), excludeMatcher(existing.ID())).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, slot booking.TimeSlot, _ *uuid.UUID) (bool, error) {
				s.True(slot.Start().Equal(existing.StartDate()))
				s.True(slot.End().Equal(newEnd))
				return false, nil
			})
		s.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				s.Equal(existing.ID(), b.ID())
				s.True(b.EndDate().Equal(newEnd))
				return b, nil
			})

		updated, err := s.uc.Update(context.Background(), scope, existing.ID(), input)
		s.Require().NoError(err)
		s.True(updated.EndDate().Equal(newEnd))
	})

	s.Run("keeping a past start is allowed when it does not change", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		pastStart := testNow.Add(-48 * time.Hour)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
			b.StartDate = pastStart
			b.EndDate = pastStart.Add(2 * time.Hour)
		}).BuildDomain()
		s.Require().NoError(err)

		newEnd := pastStart.Add(3 * time.Hour)
		input := usecase.BookingInput{EndDate: strPtr(isodate.Format(newEnd))}

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), gomock.Any()).
			Return(existing, nil)
		s.expectActiveRefs(callerID, existing.SpotID())
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), existing.SpotID(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				return b, nil
			})

		_, err = s.uc.Update(context.Background(), scope, existing.ID(), input)
		s.NoError(err)
	})

	s.Run("moving the start into the past is rejected", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
			b.StartDate = testNow.Add(24 * time.Hour)
			b.EndDate = testNow.Add(26 * time.Hour)
		}).BuildDomain()
		s.Require().NoError(err)

		input := usecase.BookingInput{StartDate: strPtr(isodate.Format(testNow.Add(-time.Hour)))}

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), gomock.Any()).
			Return(existing, nil)

		_, err = s.uc.Update(context.Background(), scope, existing.ID(), input)

		var vErr *usecase.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal([]string{"startDate cannot be in the past"}, vErr.Reasons)
	})

	s.Run("own slot does not conflict with itself", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		// Same slot resubmitted: the overlap check must exclude this row.
		input := usecase.BookingInput{
			StartDate: strPtr(isodate.Format(existing.StartDate())),
			EndDate:   strPtr(isodate.Format(existing.EndDate())),
		}

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), gomock.Any()).
			Return(existing, nil)
		s.expectActiveRefs(callerID, existing.SpotID())
		s.bookings.EXPECT().
			HasOverlap(gomock.Any(), existing.SpotID(), gomock.Any(), excludeMatcher(existing.ID())).
			Return(false, nil)
		s.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
				return b, nil
			})

		_, err = s.uc.Update(context.Background(), scope, existing.ID(), input)
		s.NoError(err)
	})

	s.Run("foreign row is not found before validation runs", func() {
		scope := auth.OwnerScope(uuid.New())
		id := uuid.New()

		s.bookings.EXPECT().
			FindByID(gomock.Any(), id, gomock.Any()).
			Return(nil, notFoundErr())

		_, err := s.uc.Update(context.Background(), scope, id, usecase.BookingInput{})
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("standard caller may not reassign to another user", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		otherID := uuid.New()
		input := usecase.BookingInput{UserID: &otherID}

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), gomock.Any()).
			Return(existing, nil)

		_, err = s.uc.Update(context.Background(), scope, existing.ID(), input)
		s.ErrorIs(err, errs.ErrForeignUserID)
	})
}

func (s *BookingUseCaseTestSuite) TestDelete() {
	s.Run("soft deletes a scoped row", func() {
		callerID := uuid.New()
		scope := auth.OwnerScope(callerID)
		existing, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.UserID = callerID
		}).BuildDomain()
		s.Require().NoError(err)

		s.bookings.EXPECT().
			FindByID(gomock.Any(), existing.ID(), ownerMatcher(callerID)).
			Return(existing, nil)
		s.bookings.EXPECT().
			SoftDelete(gomock.Any(), existing.ID()).
			Return(nil)

		s.NoError(s.uc.Delete(context.Background(), scope, existing.ID()))
	})

	s.Run("missing row is not found", func() {
		scope := auth.AdminScope(uuid.New())
		id := uuid.New()

		s.bookings.EXPECT().
			FindByID(gomock.Any(), id, gomock.Nil()).
			Return(nil, notFoundErr())

		err := s.uc.Delete(context.Background(), scope, id)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})
}

// ownerMatcher matches a *uuid.UUID owner filter by value.
func ownerMatcher(want uuid.UUID) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		got, ok := x.(*uuid.UUID)
		return ok && got != nil && *got == want
	})
}

// excludeMatcher matches the update's self-exclusion id.
func excludeMatcher(want uuid.UUID) gomock.Matcher {
	return ownerMatcher(want)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &usecase.ValidationError{Reasons: []string{"startDate is required", "endDate is required"}}

	assert.Equal(t, "startDate is required; endDate is required", err.Error())
	require.ErrorIs(t, err, errs.ErrDomainValidation)
}
