package enums

import "fmt"

// Role represents an account-level permissions role. Role names carry the
// ROLE_ prefix because that is how they are stored and matched.
type Role string

const (
	RoleAdmin  Role = "ROLE_ADMIN"
	RoleNormal Role = "ROLE_NORMAL"
)

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleNormal:
		return Role(value), nil
	}
	return "", fmt.Errorf("invalid role %q", value)
}
