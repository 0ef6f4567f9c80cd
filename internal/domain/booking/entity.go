// Package booking holds the reservation aggregate: a time-bounded claim
// on one parking spot, exclusively owned by one user.
package booking

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	spotID    uuid.UUID
	slot      TimeSlot
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func NewBooking(userID, spotID uuid.UUID, slot TimeSlot) *Booking {
	return &Booking{
		id:     uuid.New(),
		userID: userID,
		spotID: spotID,
		slot:   slot,
	}
}

func ReconstructBooking(
	id, userID, spotID uuid.UUID,
	slot TimeSlot,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		spotID:    spotID,
		slot:      slot,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (b *Booking) IsActive() bool {
	return b.deletedAt == nil
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// Reassign produces the candidate state for an update: ownership, spot
// and slot change together in one value, so there is no intermediate
// state where they disagree.
func (b *Booking) Reassign(userID, spotID uuid.UUID, slot TimeSlot) *Booking {
	return &Booking{
		id:        b.id,
		userID:    userID,
		spotID:    spotID,
		slot:      slot,
		createdAt: b.createdAt,
		updatedAt: b.updatedAt,
		deletedAt: b.deletedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) SpotID() uuid.UUID     { return b.spotID }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) StartDate() time.Time  { return b.slot.Start() }
func (b *Booking) EndDate() time.Time    { return b.slot.End() }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
func (b *Booking) DeletedAt() *time.Time { return b.deletedAt }
