package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "parkspot/internal/handler/dto/request"
	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/httperr"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/paging"
	"parkspot/internal/usecase"
)

type BookingHandler struct {
	bookings usecase.BookingUseCase
}

func NewBookingHandler(bookings usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// @Summary List bookings
// @Description List bookings visible to the caller, paginated
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (0-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} resdto.PaginatedBookingsResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	page, err := h.bookings.List(c.Request.Context(), scope, paging.New(query.Page, query.PageSize))
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page.Bookings, page.Meta))
}

// @Summary Get booking
// @Description Get one booking by id; rows owned by other users are not found
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrBookingNotFound, "Booking not found", nil)
		return
	}

	b, err := h.bookings.Get(c.Request.Context(), scope, id)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Create booking
// @Description Reserve a parking spot for a time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookingPayload true "Booking payload"
// @Success 201 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	var payload reqdto.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), scope, payload.ToInput())
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Update booking
// @Description Re-book with partial fields merged over the stored row
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.BookingPayload true "Fields to change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrBookingNotFound, "Booking not found", nil)
		return
	}

	var payload reqdto.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	b, err := h.bookings.Update(c.Request.Context(), scope, id, payload.ToInput())
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Delete booking
// @Description Soft-delete a booking; the row is kept for audit
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing auth scope"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrBookingNotFound, "Booking not found", nil)
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), scope, id); err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// abortWithBookingError maps usecase faults to HTTP statuses. Validation
// and conflict stay distinct so clients can tell "fix your input" from
// "this slot is taken".
func (h *BookingHandler) abortWithBookingError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", validationErr.Reasons)
	case errors.Is(err, errs.ErrForeignUserID):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Illegal value of 'userId' parameter", nil)
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrBookingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "This Parking Spot is already booked for that time period", nil)
	case errors.Is(err, errs.ErrPermissionDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
