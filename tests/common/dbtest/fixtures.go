//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts an active user and returns its id. The token is
// the caller's bearer credential for subsequent requests.
func CreateTestUser(t *testing.T, db DBLike, email, role, token string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO users (id, first_name, last_name, email, role, token) VALUES ($1, $2, $3, $4, $5, $6)",
		userID, "Test", "User", email, role, token)
	require.NoError(t, err)

	return userID
}

func CreateTestSpot(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	spotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO parking_spots (id, name) VALUES ($1, $2)", spotID, name)
	require.NoError(t, err)

	return spotID
}

// SoftDeleteUser retires a user row so token resolution stops matching it.
func SoftDeleteUser(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE users SET deleted_at = now() WHERE id = $1", id)
	require.NoError(t, err)
}
