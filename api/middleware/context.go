package middleware

import (
	"context"

	"github.com/electrostorehq/backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxEmail  contextKey = "email"
	ctxRoles  contextKey = "roles"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
	Roles  []enums.Role
}

// IdentityResolver turns a verified token subject into a full identity.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (*Identity, error)
}

// WithIdentity injects the caller's identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.UserID)
	ctx = context.WithValue(ctx, ctxEmail, identity.Email)
	return context.WithValue(ctx, ctxRoles, identity.Roles)
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func EmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxEmail).(string); ok {
		return v
	}
	return ""
}

func RolesFromContext(ctx context.Context) []enums.Role {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxRoles).([]enums.Role); ok {
		return v
	}
	return nil
}

// IsAuthenticated reports whether an identity was attached to the request.
func IsAuthenticated(ctx context.Context) bool {
	return EmailFromContext(ctx) != ""
}

// HasRole reports whether the context identity carries any of the given roles.
func HasRole(ctx context.Context, roles ...enums.Role) bool {
	held := RolesFromContext(ctx)
	for _, want := range roles {
		for _, have := range held {
			if have == want {
				return true
			}
		}
	}
	return false
}
