package response

import (
	"github.com/google/uuid"

	"parkspot/internal/domain/user"
	"parkspot/internal/pkg/isodate"
)

// UserResponse deliberately omits the token column: credentials never
// leave the store through the listing API.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedDate string    `json:"createdDate"`
	UpdatedDate string    `json:"updatedDate"`
}

func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		Email:       u.Email().Value(),
		Role:        u.Role().String(),
		CreatedDate: isodate.Format(u.CreatedAt()),
		UpdatedDate: isodate.Format(u.UpdatedAt()),
	}
}

func FromUsers(users []*user.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = FromUser(u)
	}
	return result
}
