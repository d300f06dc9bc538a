package service

import (
	experienceserrors "bookit/internal/experiences/errors"
	"bookit/internal/experiences/repository"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExperienceService interface {
	GetAll(ctx context.Context) ([]*model.Experience, error)
	GetByID(ctx context.Context, id string) (*model.Experience, error)
}

type experienceService struct {
	repo repository.ExperienceRepository
	log  *logger.Logger
}

func NewExperienceService(repo repository.ExperienceRepository, log *logger.Logger) ExperienceService {
	return &experienceService{
		repo: repo,
		log:  log,
	}
}

// GetAll returns the catalog. An empty catalog is reported as not found.
func (s *experienceService) GetAll(ctx context.Context) ([]*model.Experience, error) {
	experiences, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list experiences", "error", err)
		return nil, apperrors.StorageUnavailable(err)
	}
	if len(experiences) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "No experiences found", http.StatusNotFound)
	}
	return experiences, nil
}

func (s *experienceService) GetByID(ctx context.Context, id string) (*model.Experience, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, apperrors.InvalidIdentifier(id)
	}

	experience, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, experienceserrors.ErrNotFound):
			return nil, apperrors.ExperienceNotFound(id)
		case errors.Is(err, experienceserrors.ErrInvalidID):
			return nil, apperrors.InvalidIdentifier(id)
		}
		s.log.Error("Failed to get experience", "experience_id", id, "error", err)
		return nil, apperrors.StorageUnavailable(err)
	}

	return experience, nil
}
