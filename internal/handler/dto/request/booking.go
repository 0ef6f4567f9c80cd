package request

import (
	"github.com/google/uuid"

	"parkspot/internal/usecase"
)

// BookingPayload is the mutation body for create and update. All fields
// are optional at the transport layer; the validation pipeline decides
// what is required per operation and reports every missing or malformed
// field at once.
type BookingPayload struct {
	UserID        *uuid.UUID `json:"userId,omitempty"`
	ParkingSpotID *uuid.UUID `json:"parkingSpotId,omitempty"`
	StartDate     *string    `json:"startDate,omitempty"`
	EndDate       *string    `json:"endDate,omitempty"`
}

func (p BookingPayload) ToInput() usecase.BookingInput {
	return usecase.BookingInput{
		UserID:    p.UserID,
		SpotID:    p.ParkingSpotID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
	}
}

type ListBookingsQuery struct {
	Page     int `form:"page,default=0"`
	PageSize int `form:"pageSize,default=10"`
}
