package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/config"
	"github.com/electrostorehq/backend/pkg/db"
	"github.com/electrostorehq/backend/pkg/db/models"
	"github.com/electrostorehq/backend/pkg/enums"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/pagination"
	"github.com/electrostorehq/backend/pkg/security"
	"github.com/electrostorehq/backend/pkg/storage"
)

const userNotFoundMessage = "user not found"

// Service defines the behavior needed by the users controller.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	GetByEmail(ctx context.Context, email string) (*UserDTO, error)
	List(ctx context.Context, page pagination.Params) (pagination.Page[UserDTO], error)
	Search(ctx context.Context, keyword string) ([]UserDTO, error)
	UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*UserDTO, error)
	OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

type repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindRole(ctx context.Context, name enums.Role) (*models.Role, error)
	List(ctx context.Context, page pagination.Params) ([]models.User, int64, error)
	Search(ctx context.Context, keyword string) ([]models.User, error)
	UpdateImage(ctx context.Context, id uuid.UUID, imageName string) error
}

type service struct {
	repo        repository
	store       storage.Store
	passwordCfg config.PasswordConfig
	storageCfg  config.StorageConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo           repository
	Store          storage.Store
	PasswordConfig config.PasswordConfig
	StorageConfig  config.StorageConfig
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	return &service{
		repo:        params.Repo,
		store:       params.Store,
		passwordCfg: params.PasswordConfig,
		storageCfg:  params.StorageConfig,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	role, err := s.repo.FindRole(ctx, enums.RoleNormal)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve default role")
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Gender:       req.Gender,
		About:        req.About,
		Provider:     enums.ProviderSelf,
		IsActive:     true,
		Roles:        []models.Role{*role},
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.About != nil {
		user.About = req.About
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if user.ImageName != nil {
		if err := s.store.Remove(ctx, s.storageCfg.UserImageDir, *user.ImageName); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove profile image")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (pagination.Page[UserDTO], error) {
	page = page.Normalize("name", "email", "created_at")
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return pagination.Page[UserDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}

	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return pagination.NewPage(dtos, page, total), nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]UserDTO, error) {
	rows, err := s.repo.Search(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search users")
	}
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) UploadImage(ctx context.Context, id uuid.UUID, filename string, contents io.Reader) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.store.Save(ctx, s.storageCfg.UserImageDir, filename, contents)
	if err != nil {
		return nil, err
	}

	if user.ImageName != nil {
		// stale image cleanup is best effort
		_ = s.store.Remove(ctx, s.storageCfg.UserImageDir, *user.ImageName)
	}

	if err := s.repo.UpdateImage(ctx, id, name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist image name")
	}

	user.ImageName = &name
	user.UpdatedAt = time.Now().UTC()
	return FromModel(user), nil
}

func (s *service) OpenImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ImageName == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user has no profile image")
	}
	return s.store.Open(ctx, s.storageCfg.UserImageDir, *user.ImageName)
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
