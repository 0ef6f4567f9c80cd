package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account known to the booking API. Token uniqueness across
// non-deleted users is enforced by the store.
type User struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     Email
	role      Role
	token     Token
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func NewUser(firstName, lastName string, email Email, role Role, token Token) *User {
	return &User{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		role:      role,
		token:     token,
	}
}

// ReconstructUser rebuilds a persisted row. Stored values bypass value
// object validation; the store is the source of truth for them.
func ReconstructUser(
	id uuid.UUID,
	firstName, lastName, email string,
	role Role,
	token string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *User {
	return &User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     Email{value: email},
		role:      role,
		token:     Token{value: token},
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (u *User) IsActive() bool {
	return u.deletedAt == nil
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) FirstName() string     { return u.firstName }
func (u *User) LastName() string      { return u.lastName }
func (u *User) Email() Email          { return u.email }
func (u *User) Role() Role            { return u.role }
func (u *User) Token() Token          { return u.token }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }
