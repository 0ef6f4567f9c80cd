//go:build unit || e2e

package builder

import (
	"time"

	"parkspot/internal/domain/spot"

	"github.com/google/uuid"
)

type SpotBuilder struct {
	ID        uuid.UUID
	Name      string
	DeletedAt *time.Time
}

func NewSpotBuilder() *SpotBuilder {
	return &SpotBuilder{
		ID:   uuid.New(),
		Name: "Spot A-01",
	}
}

func (s *SpotBuilder) With(mutate func(*SpotBuilder)) *SpotBuilder {
	mutate(s)
	return s
}

func (s *SpotBuilder) BuildDomain() *spot.ParkingSpot {
	now := time.Now().UTC()
	return spot.ReconstructParkingSpot(s.ID, s.Name, now, now, s.DeletedAt)
}
