//go:build e2e

package e2e

import (
	"net/http"
	"testing"
	"time"

	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/pkg/isodate"
	"parkspot/tests/common/dbtest"
	"parkspot/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	adminToken  = "e2e-admin-token"
	aliceToken  = "e2e-alice-token"
	bobToken    = "e2e-bob-token"
	unusedToken = "e2e-unknown-token"
)

type BookingE2ETestSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	router *gin.Engine

	adminID uuid.UUID
	aliceID uuid.UUID
	bobID   uuid.UUID
	spotID  uuid.UUID

	day time.Time
}

func (s *BookingE2ETestSuite) SetupSuite() {
	pool, router, _ := setupE2EEnvironment(s.T())
	s.pool = pool
	s.router = router

	s.adminID = dbtest.CreateTestUser(s.T(), pool, "admin@example.com", "admin", adminToken)
	s.aliceID = dbtest.CreateTestUser(s.T(), pool, "alice@example.com", "standard", aliceToken)
	s.bobID = dbtest.CreateTestUser(s.T(), pool, "bob@example.com", "standard", bobToken)
	s.spotID = dbtest.CreateTestSpot(s.T(), pool, "Spot A-01")

	s.day = time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Hour)
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) slot(startHour, endHour int) map[string]any {
	return map[string]any{
		"parkingSpotId": s.spotID.String(),
		"startDate":     isodate.Format(s.day.Add(time.Duration(startHour) * time.Hour)),
		"endDate":       isodate.Format(s.day.Add(time.Duration(endHour) * time.Hour)),
	}
}

func (s *BookingE2ETestSuite) TestBookingLifecycle() {
	var first resdto.BookingResponse

	s.Run("unauthenticated requests are rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, unusedToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("alice books 10:00-12:00", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.slot(10, 12), aliceToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &first)
		s.Equal(s.aliceID, first.UserID)
		s.Equal(s.spotID, first.ParkingSpotID)
	})

	s.Run("bob cannot book the overlapping 11:00-13:00", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.slot(11, 13), bobToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict,
			"This Parking Spot is already booked for that time period")
	})

	s.Run("bob books the adjacent 12:00-13:00", func() {
		var created resdto.BookingResponse
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.slot(12, 13), bobToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal(s.bobID, created.UserID)
	})

	s.Run("alice sees only her own bookings", func() {
		var page resdto.PaginatedBookingsResponse
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, aliceToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)
		s.Equal(int64(1), page.Meta.Total)
		for _, b := range page.Data {
			s.Equal(s.aliceID, b.UserID)
		}
	})

	s.Run("admin sees every booking", func() {
		var page resdto.PaginatedBookingsResponse
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, adminToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)
		s.Equal(int64(2), page.Meta.Total)
	})

	s.Run("bob cannot read alice's booking", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+first.ID.String(), nil, bobToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("alice resubmits her own slot without a conflict", func() {
		body := map[string]any{
			"startDate": first.StartDate,
			"endDate":   first.EndDate,
		}
		var updated resdto.BookingResponse
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/"+first.ID.String(), body, aliceToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Equal(first.ID, updated.ID)
	})

	s.Run("alice cannot extend into bob's slot", func() {
		body := map[string]any{"endDate": isodate.Format(s.day.Add(13 * time.Hour))}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/"+first.ID.String(), body, aliceToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("alice cannot reassign her booking to bob", func() {
		body := map[string]any{"userId": s.bobID.String()}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookings/"+first.ID.String(), body, aliceToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Illegal value of 'userId' parameter")
	})

	s.Run("validation reasons come back together", func() {
		body := map[string]any{
			"parkingSpotId": s.spotID.String(),
			"startDate":     "not-a-date",
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, aliceToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
		detail := httptest.ErrorDetail(s.T(), rec)
		s.Contains(detail, "endDate is required")
		s.Contains(detail, "Invalid startDate value")
	})

	s.Run("deleting frees the slot", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/"+first.ID.String(), nil, aliceToken)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+first.ID.String(), nil, aliceToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")

		// The retired row no longer blocks the interval
		var rebooked resdto.BookingResponse
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.slot(10, 12), bobToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &rebooked)
		s.Equal(s.bobID, rebooked.UserID)
	})
}

func (s *BookingE2ETestSuite) TestUserListing() {
	s.Run("standard caller is denied", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, aliceToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("admin lists users without tokens in the payload", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, adminToken)

		var users []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &users)
		s.GreaterOrEqual(len(users), 3)
		s.NotContains(rec.Body.String(), adminToken)
	})
}
