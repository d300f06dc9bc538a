package validator

import (
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"errors"
	"strings"
	"testing"
)

func validExperience() *model.Experience {
	return &model.Experience{
		Title:    "Sky Diving Adventure",
		Image:    "https://example.com/sky.jpg",
		Location: "Goa",
		Price:    5000,
		Slots: []model.Slot{
			{Date: "2030-11-01", Time: "10:00 AM", Capacity: 5, Booked: 2},
			{Date: "2030-11-01", Time: "2:00 PM", Capacity: 3, Booked: 3},
		},
	}
}

func TestExperienceValidator_Validate(t *testing.T) {
	v := NewExperienceValidator(logger.Discard())

	tests := []struct {
		name    string
		mutate  func(*model.Experience)
		wantErr string
	}{
		{name: "valid", mutate: func(*model.Experience) {}},
		{name: "missing title", mutate: func(e *model.Experience) { e.Title = "" }, wantErr: "Title"},
		{name: "negative price", mutate: func(e *model.Experience) { e.Price = -1 }, wantErr: "Price"},
		{name: "bad image url", mutate: func(e *model.Experience) { e.Image = "not a url" }, wantErr: "Image"},
		{name: "bad slot date", mutate: func(e *model.Experience) { e.Slots[0].Date = "01-11-2030" }, wantErr: "Date"},
		{name: "24-hour slot time", mutate: func(e *model.Experience) { e.Slots[0].Time = "14:00" }, wantErr: "Time"},
		{name: "zero capacity", mutate: func(e *model.Experience) { e.Slots[0].Capacity = 0; e.Slots[0].Booked = 0 }, wantErr: "Capacity"},
		{name: "overbooked slot", mutate: func(e *model.Experience) { e.Slots[0].Booked = 6 }, wantErr: "Booked"},
		{
			name:    "duplicate slot",
			mutate:  func(e *model.Experience) { e.Slots[1].Time = "10:00 AM" },
			wantErr: "duplicate slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExperience()
			tt.mutate(e)

			err := v.Validate(e)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if !strings.Contains(verrs.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, verrs)
			}
		})
	}
}
