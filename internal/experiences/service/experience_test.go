package service

import (
	"context"
	"errors"
	"testing"

	experienceserrors "bookit/internal/experiences/errors"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

type mockExperienceRepository struct {
	findAllFunc  func(ctx context.Context) ([]*model.Experience, error)
	findByIDFunc func(ctx context.Context, id string) (*model.Experience, error)
}

func (m *mockExperienceRepository) FindAll(ctx context.Context) ([]*model.Experience, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockExperienceRepository) FindByID(ctx context.Context, id string) (*model.Experience, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, experienceserrors.ErrNotFound
}

func (m *mockExperienceRepository) ReserveSeats(context.Context, string, model.Slot, int) (*model.Experience, error) {
	return nil, errors.New("not implemented")
}

func (m *mockExperienceRepository) InsertMany(context.Context, []*model.Experience) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (m *mockExperienceRepository) Count(context.Context) (int64, error) {
	return 0, nil
}

const validID = "64b7f0c2a1b2c3d4e5f60718"

func TestExperienceService_GetAll(t *testing.T) {
	tests := []struct {
		name     string
		repo     *mockExperienceRepository
		wantLen  int
		wantCode string
	}{
		{
			name: "returns catalog",
			repo: &mockExperienceRepository{findAllFunc: func(context.Context) ([]*model.Experience, error) {
				return []*model.Experience{{Title: "Sky Diving Adventure"}}, nil
			}},
			wantLen: 1,
		},
		{
			name:     "empty catalog is not found",
			repo:     &mockExperienceRepository{},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "storage failure",
			repo: &mockExperienceRepository{findAllFunc: func(context.Context) ([]*model.Experience, error) {
				return nil, errors.New("server selection error")
			}},
			wantCode: apperrors.CodeStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewExperienceService(tt.repo, logger.Discard())
			got, err := svc.GetAll(context.Background())

			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("expected %d experiences, got %d", tt.wantLen, len(got))
			}
		})
	}
}

func TestExperienceService_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		repo     *mockExperienceRepository
		wantCode string
	}{
		{
			name:     "malformed id",
			id:       "not-an-id",
			repo:     &mockExperienceRepository{},
			wantCode: apperrors.CodeInvalidIdentifier,
		},
		{
			name:     "missing experience",
			id:       validID,
			repo:     &mockExperienceRepository{},
			wantCode: apperrors.CodeExperienceNotFound,
		},
		{
			name: "found",
			id:   validID,
			repo: &mockExperienceRepository{findByIDFunc: func(_ context.Context, id string) (*model.Experience, error) {
				return &model.Experience{ID: id, Title: "Scuba Diving"}, nil
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewExperienceService(tt.repo, logger.Discard())
			got, err := svc.GetByID(context.Background(), tt.id)

			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.id {
				t.Errorf("expected id %s, got %s", tt.id, got.ID)
			}
		})
	}
}
