package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"parkspot/internal/domain/spot"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/pkg/pgconv"
)

const spotColumns = "id, name, created_at, updated_at, deleted_at"

type SpotRepository struct {
	db db.DBTX
}

func NewSpotRepository(db db.DBTX) *SpotRepository {
	return &SpotRepository{db: db}
}

func (r *SpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*spot.ParkingSpot, error) {
	sql, args, err := psql.Select(spotColumns).
		From("parking_spots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build spot by id query", err)
	}

	s, err := scanSpot(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("parking spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get parking spot", err)
	}

	return s, nil
}

func scanSpot(row rowScanner) (*spot.ParkingSpot, error) {
	var (
		id                   uuid.UUID
		name                 string
		createdAt, updatedAt time.Time
		deletedAt            *time.Time
	)

	if err := row.Scan(&id, &name, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	return spot.ReconstructParkingSpot(id, name, createdAt, updatedAt, deletedAt), nil
}
