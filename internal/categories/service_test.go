package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/electrostorehq/backend/pkg/db/models"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
	"github.com/electrostorehq/backend/pkg/pagination"
)

type stubCategoryRepo struct {
	byID    map[uuid.UUID]*models.Category
	created *models.Category
	deleted []uuid.UUID
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: map[uuid.UUID]*models.Category{}}
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	s.created = category
	s.byID[category.ID] = category
	return category, nil
}

func (s *stubCategoryRepo) Save(_ context.Context, category *models.Category) error {
	s.byID[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoryRepo) List(_ context.Context, _ pagination.Params) ([]models.Category, int64, error) {
	rows := make([]models.Category, 0, len(s.byID))
	for _, c := range s.byID {
		rows = append(rows, *c)
	}
	return rows, int64(len(rows)), nil
}

func newTestService(t *testing.T, repo *stubCategoryRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateAssignsID(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateCategoryRequest{
		Title:       "  Wearables ",
		Description: "watches and bands",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.ID == uuid.Nil {
		t.Error("expected service to assign an id")
	}
	if dto.Title != "Wearables" {
		t.Errorf("expected trimmed title, got %q", dto.Title)
	}
}

func TestServiceUpdateMissingCategory(t *testing.T) {
	svc := newTestService(t, newStubCategoryRepo())

	title := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateCategoryRequest{Title: &title})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceUpdatePartialFields(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := newTestService(t, repo)
	category := &models.Category{ID: uuid.New(), Title: "Before", Description: "untouched"}
	repo.byID[category.ID] = category

	title := "After"
	dto, err := svc.Update(context.Background(), category.ID, UpdateCategoryRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.Title != "After" || dto.Description != "untouched" {
		t.Errorf("expected partial update, got %+v", dto)
	}
}

func TestServiceDelete(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := newTestService(t, repo)
	category := &models.Category{ID: uuid.New(), Title: "Doomed", Description: "d"}
	repo.byID[category.ID] = category

	if err := svc.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Errorf("expected repo delete, got %v", repo.deleted)
	}
}
