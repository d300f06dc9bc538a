package handler

import (
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type mockExperienceService struct {
	getAllFunc  func(ctx context.Context) ([]*model.Experience, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Experience, error)
}

func (m *mockExperienceService) GetAll(ctx context.Context) ([]*model.Experience, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockExperienceService) GetByID(ctx context.Context, id string) (*model.Experience, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, apperrors.ExperienceNotFound(id)
}

func TestGetByID(t *testing.T) {
	svc := &mockExperienceService{
		getByIDFunc: func(_ context.Context, id string) (*model.Experience, error) {
			switch id {
			case "64b7f0c2a1b2c3d4e5f60718":
				return &model.Experience{
					ID:    id,
					Title: "Sky Diving Adventure",
					Price: 5000,
					Slots: []model.Slot{
						{Date: "2030-11-01", Time: "10:00 AM", Capacity: 5, Booked: 2},
						{Date: "2030-11-01", Time: "2:00 PM", Capacity: 3, Booked: 3},
					},
				}, nil
			case "xyz":
				return nil, apperrors.InvalidIdentifier(id)
			}
			return nil, apperrors.ExperienceNotFound(id)
		},
	}
	router := httprouter.New()
	NewExperienceHandler(svc, logger.Discard()).RegisterRoutes(router)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "found", id: "64b7f0c2a1b2c3d4e5f60718", wantStatus: http.StatusOK},
		{name: "bad id", id: "xyz", wantStatus: http.StatusBadRequest},
		{name: "missing", id: "64b7f0c2a1b2c3d4e5f60799", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/experiences/"+tt.id, nil))

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got struct {
				Slots []struct {
					Time      string `json:"time"`
					Available bool   `json:"available"`
				} `json:"slots"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(got.Slots) != 2 || !got.Slots[0].Available || got.Slots[1].Available {
				t.Errorf("unexpected slot availability: %+v", got.Slots)
			}
		})
	}
}

func TestGetAll_Empty(t *testing.T) {
	svc := &mockExperienceService{
		getAllFunc: func(context.Context) ([]*model.Experience, error) {
			return nil, apperrors.New(apperrors.CodeNotFound, "No experiences found", http.StatusNotFound)
		},
	}
	router := httprouter.New()
	NewExperienceHandler(svc, logger.Discard()).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/experiences", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil || resp.Error != "No experiences found" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}
