package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/electrostorehq/backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Gender       *string        `gorm:"column:gender"`
	About        *string        `gorm:"column:about"`
	ImageName    *string        `gorm:"column:image_name"`
	Provider     enums.Provider `gorm:"column:provider;not null;default:SELF"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	Roles        []Role         `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role enums.Role) bool {
	for _, r := range u.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}
