package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/internal/users"
	pkgAuth "github.com/electrostorehq/backend/pkg/auth"
	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/googleauth"
	"github.com/electrostorehq/backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error)
	LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*TokenResponse, error)
	Current(ctx context.Context, email string) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindRole(ctx context.Context, name enums.Role) (*models.Role, error)
}

type refreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, rt *models.RefreshToken) (*models.RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	users       userRepository
	tokens      refreshTokenRepository
	google      googleauth.Verifier
	jwtCfg      config.JWTConfig
	googleCfg   config.GoogleConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo         userRepository
	RefreshTokenRepo refreshTokenRepository
	GoogleVerifier   googleauth.Verifier
	JWTConfig        config.JWTConfig
	GoogleConfig     config.GoogleConfig
	PasswordConfig   config.PasswordConfig
	Now              func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.RefreshTokenRepo == nil {
		return nil, fmt.Errorf("refresh token repository is required")
	}
	if params.GoogleVerifier == nil {
		return nil, fmt.Errorf("google verifier is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.UserRepo,
		tokens:      params.RefreshTokenRepo,
		google:      params.GoogleVerifier,
		jwtCfg:      params.JWTConfig,
		googleCfg:   params.GoogleConfig,
		passwordCfg: params.PasswordConfig,
		now:         now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.issueTokens(ctx, user)
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	rt, err := s.tokens.FindByToken(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh token not recognized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup refresh token")
	}

	if rt.ExpiresAt.Before(s.now()) {
		// expired tokens are removed so the row cannot be replayed
		if err := s.tokens.DeleteByUserID(ctx, rt.UserID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "discard expired refresh token")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh token expired, please login again")
	}

	user, err := s.users.FindByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh token holder no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	// the refresh token itself survives until its own expiry
	return &TokenResponse{
		Token: accessToken,
		RefreshToken: RefreshTokenDTO{
			Token:     rt.Token,
			ExpiresAt: rt.ExpiresAt,
		},
		User: users.FromModel(user),
	}, nil
}

func (s *service) LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*TokenResponse, error) {
	profile, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Provider != enums.ProviderGoogle {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "account already registered with a different provider")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.provisionGoogleUser(ctx, profile, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	// federated sign-in still runs the regular credential check with the
	// configured placeholder password
	ok, err := security.VerifyPassword(s.googleCfg.DefaultPassword, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.issueTokens(ctx, user)
}

func (s *service) Current(ctx context.Context, email string) (*users.UserDTO, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authenticated user no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return users.FromModel(user), nil
}

func (s *service) provisionGoogleUser(ctx context.Context, profile googleauth.Profile, email string) (*models.User, error) {
	hash, err := security.HashPassword(s.googleCfg.DefaultPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash placeholder password")
	}

	role, err := s.users.FindRole(ctx, enums.RoleNormal)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve default role")
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = email
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Provider:     enums.ProviderGoogle,
		IsActive:     true,
		Roles:        []models.Role{*role},
	}
	if profile.Picture != "" {
		picture := profile.Picture
		user.ImageName = &picture
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "provision google user")
	}
	return created, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenResponse, error) {
	now := s.now()

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, user.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	rt, err := s.tokens.Rotate(ctx, &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.jwtCfg.RefreshTokenTTL()),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate refresh token")
	}

	return &TokenResponse{
		Token: accessToken,
		RefreshToken: RefreshTokenDTO{
			Token:     rt.Token,
			ExpiresAt: rt.ExpiresAt,
		},
		User: users.FromModel(user),
	}, nil
}
