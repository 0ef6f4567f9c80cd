package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"parkspot/internal/domain/user"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/pkg/pgconv"
)

const userColumns = "id, first_name, last_name, email, role, token, created_at, updated_at, deleted_at"

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindByToken resolves an opaque bearer credential to its active user.
func (r *UserRepository) FindByToken(ctx context.Context, token string) (*user.User, error) {
	sql, args, err := psql.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user by token query", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user by token", err)
	}

	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	sql, args, err := psql.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user by id query", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user by id", err)
	}

	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	sql, args, err := psql.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list users query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	var result []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read user rows", err)
	}

	return result, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		id                   uuid.UUID
		firstName, lastName  string
		email, role, token   string
		createdAt, updatedAt time.Time
		deletedAt            *time.Time
	)

	if err := row.Scan(&id, &firstName, &lastName, &email, &role, &token, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	return user.ReconstructUser(id, firstName, lastName, email, user.Role(role), token, createdAt, updatedAt, deletedAt), nil
}
