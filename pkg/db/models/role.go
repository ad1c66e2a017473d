package models

import (
	"github.com/google/uuid"

	"github.com/electrostorehq/backend/pkg/enums"
)

// Role represents a grantable permissions role.
type Role struct {
	ID   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name enums.Role `gorm:"column:name;not null;uniqueIndex"`
}
