package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Gender    *string        `json:"gender,omitempty"`
	About     *string        `json:"about,omitempty"`
	ImageName *string        `json:"imageName,omitempty"`
	Provider  enums.Provider `json:"provider"`
	IsActive  bool           `json:"isActive"`
	Roles     []string       `json:"roles"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	About    *string `json:"about,omitempty" validate:"omitempty,max=1000"`
}

// UpdateUserRequest carries the mutable profile fields.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,max=20"`
	About    *string `json:"about,omitempty" validate:"omitempty,max=1000"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name.String())
	}

	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		About:     u.About,
		ImageName: u.ImageName,
		Provider:  u.Provider,
		IsActive:  u.IsActive,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
