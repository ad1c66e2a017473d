package googleauth

import (
	"context"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/errors"
)

// Profile is the subset of a Google ID token payload the platform cares about.
type Profile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier checks a Google-issued ID token and extracts the holder's profile.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Profile, error)
}

type verifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// New returns a Verifier bound to the configured OAuth client id. Validation
// covers the RS256 signature against Google's published keys, the audience and
// the expiry, all inside the idtoken package.
func New(cfg config.GoogleConfig) Verifier {
	return &verifier{
		audience: cfg.ClientID,
		validate: idtoken.Validate,
	}
}

func (v *verifier) Verify(ctx context.Context, rawToken string) (Profile, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Profile{}, errors.New(errors.CodeUnauthorized, "google id token is required")
	}
	if v.audience == "" {
		return Profile{}, errors.New(errors.CodeInternal, "google client id is not configured")
	}

	payload, err := v.validate(ctx, rawToken, v.audience)
	if err != nil {
		return Profile{}, errors.Wrap(errors.CodeUnauthorized, err, "google id token rejected")
	}

	profile := Profile{
		Subject: payload.Subject,
		Email:   claimString(payload, "email"),
		Name:    claimString(payload, "name"),
		Picture: claimString(payload, "picture"),
	}
	if profile.Email == "" {
		return Profile{}, errors.New(errors.CodeUnauthorized, "google id token carries no email")
	}
	return profile, nil
}

func claimString(payload *idtoken.Payload, key string) string {
	if payload == nil || payload.Claims == nil {
		return ""
	}
	if value, ok := payload.Claims[key].(string); ok {
		return value
	}
	return ""
}
