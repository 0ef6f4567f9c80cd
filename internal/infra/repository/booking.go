package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/pkg/pgconv"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "id, user_id, spot_id, start_date, end_date, created_at, updated_at, deleted_at"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Find lists active bookings, oldest first. A non-nil owner restricts the
// result to that user's rows.
func (r *BookingRepository) Find(ctx context.Context, owner *uuid.UUID, limit, offset int) ([]*booking.Booking, error) {
	query := psql.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if owner != nil {
		query = query.Where(squirrel.Eq{"user_id": *owner})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list bookings query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return result, nil
}

// Count returns the number of active bookings under the same filter Find
// applies, so page metadata stays accurate for out-of-range pages.
func (r *BookingRepository) Count(ctx context.Context, owner *uuid.UUID) (int64, error) {
	query := psql.Select("count(*)").
		From("bookings").
		Where(squirrel.Eq{"deleted_at": nil})

	if owner != nil {
		query = query.Where(squirrel.Eq{"user_id": *owner})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build count bookings query", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	return total, nil
}

// FindByID loads one active booking. With a non-nil owner, a row owned by
// someone else yields the same NOT_FOUND as an absent row, so existence
// never leaks across owners.
func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*booking.Booking, error) {
	query := psql.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil})

	if owner != nil {
		query = query.Where(squirrel.Eq{"user_id": *owner})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build get booking query", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}

	return b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	sql, args, err := psql.Insert("bookings").
		Columns("id", "user_id", "spot_id", "start_date", "end_date").
		Values(b.ID(), b.UserID(), b.SpotID(), b.StartDate(), b.EndDate()).
		Suffix("RETURNING " + bookingColumns).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build create booking query", err)
	}

	created, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return created, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	sql, args, err := psql.Update("bookings").
		Set("user_id", b.UserID()).
		Set("spot_id", b.SpotID()).
		Set("start_date", b.StartDate()).
		Set("end_date", b.EndDate()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID()}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Suffix("RETURNING " + bookingColumns).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build update booking query", err)
	}

	updated, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update booking", err)
	}

	return updated, nil
}

// SoftDelete retires the row for audit instead of removing it. All reads
// and conflict checks exclude it from this point on.
func (r *BookingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Update("bookings").
		Set("deleted_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete booking query", err)
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

// HasOverlap reports whether any active booking on the spot intersects the
// half-open candidate interval. Strict comparisons keep adjacent slots
// non-conflicting. excludeID skips the candidate's own row on update.
//
// This is a plain read, not a lock: two concurrent writers can both pass
// it. The exclusion constraint on bookings is the hard guarantee; this
// check exists to report the conflict before attempting the write.
func (r *BookingRepository) HasOverlap(ctx context.Context, spotID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	subQuery := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"spot_id": spotID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Lt{"start_date": slot.End()}).
		Where(squirrel.Gt{"end_date": slot.Start()})

	if excludeID != nil {
		subQuery = subQuery.Where(squirrel.NotEq{"id": *excludeID})
	}

	subSQL, args, err := subQuery.ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build overlap query", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+subSQL+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, userID, spotID   uuid.UUID
		startDate, endDate   time.Time
		createdAt, updatedAt time.Time
		deletedAt            *time.Time
	)

	if err := row.Scan(&id, &userID, &spotID, &startDate, &endDate, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(startDate, endDate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid interval", err)
	}

	return booking.ReconstructBooking(id, userID, spotID, slot, createdAt, updatedAt, deletedAt), nil
}
