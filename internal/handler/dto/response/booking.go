package response

import (
	"github.com/google/uuid"

	"parkspot/internal/domain/booking"
	"parkspot/internal/pkg/isodate"
	"parkspot/internal/pkg/paging"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	ParkingSpotID uuid.UUID `json:"parkingSpotId"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	CreatedDate   string    `json:"createdDate"`
	UpdatedDate   string    `json:"updatedDate"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID(),
		UserID:        b.UserID(),
		ParkingSpotID: b.SpotID(),
		StartDate:     isodate.Format(b.StartDate()),
		EndDate:       isodate.Format(b.EndDate()),
		CreatedDate:   isodate.Format(b.CreatedAt()),
		UpdatedDate:   isodate.Format(b.UpdatedAt()),
	}
}

type PaginatedBookingsResponse struct {
	Data []*BookingResponse `json:"data"`
	Meta paging.Meta        `json:"meta"`
}

func FromBookingPage(bookings []*booking.Booking, meta paging.Meta) *PaginatedBookingsResponse {
	data := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		data[i] = FromBooking(b)
	}
	return &PaginatedBookingsResponse{Data: data, Meta: meta}
}
