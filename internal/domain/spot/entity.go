// Package spot holds the parking spot aggregate. A spot is the shared,
// finite resource bookings compete for.
package spot

import (
	"time"

	"github.com/google/uuid"
)

type ParkingSpot struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func NewParkingSpot(name string) *ParkingSpot {
	return &ParkingSpot{
		id:   uuid.New(),
		name: name,
	}
}

func ReconstructParkingSpot(
	id uuid.UUID,
	name string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *ParkingSpot {
	return &ParkingSpot{
		id:        id,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (s *ParkingSpot) IsActive() bool {
	return s.deletedAt == nil
}

func (s *ParkingSpot) ID() uuid.UUID         { return s.id }
func (s *ParkingSpot) Name() string          { return s.name }
func (s *ParkingSpot) CreatedAt() time.Time  { return s.createdAt }
func (s *ParkingSpot) UpdatedAt() time.Time  { return s.updatedAt }
func (s *ParkingSpot) DeletedAt() *time.Time { return s.deletedAt }
