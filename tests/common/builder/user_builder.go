//go:build unit || e2e

package builder

import (
	"time"

	"parkspot/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      string
	Token     string
	DeletedAt *time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        uuid.New(),
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Role:      "standard",
		Token:     "token-" + uuid.NewString(),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	return u
}

func (u *UserBuilder) BuildDomain() *user.User {
	now := time.Now().UTC()
	return user.ReconstructUser(
		u.ID,
		u.FirstName, u.LastName, u.Email,
		user.Role(u.Role),
		u.Token,
		now, now,
		u.DeletedAt,
	)
}
