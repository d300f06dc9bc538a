package mongo

import (
	"bookit/pkg/model"
	"bookit/pkg/sanitizer"
	"bookit/pkg/slottime"
	"context"
	"fmt"
	"time"
)

const seedImage = "https://seahawksscuba.in/wp-content/uploads/2024/09/Fish-Point-scuba-dive.jpg"

type ExperienceSeeder interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, experiences []*model.Experience) ([]string, error)
}

type ExperienceChecker interface {
	Validate(experience *model.Experience) error
}

type seedSlot struct {
	dayOffset int
	time      string
	capacity  int
	booked    int
}

type seedExperience struct {
	title       string
	description string
	location    string
	price       int64
	slots       []seedSlot
}

var demoCatalog = []seedExperience{
	{"Sky Diving Adventure", "Experience the thrill of free fall over the beaches of Goa.", "Goa", 5000,
		[]seedSlot{{1, "10:00 AM", 5, 2}, {1, "2:00 PM", 3, 3}}},
	{"Scuba Diving Experience", "Dive into the deep blue and explore coral reefs and marine life.", "Andaman Islands", 7500,
		[]seedSlot{{3, "9:00 AM", 8, 5}, {4, "1:00 PM", 6, 3}}},
	{"Hot Air Balloon Ride", "Fly over the Aravalli Hills and witness sunrise from the skies.", "Jaipur", 4500,
		[]seedSlot{{5, "6:00 AM", 10, 4}, {6, "6:00 AM", 10, 7}}},
	{"Desert Safari Experience", "Ride across sand dunes and enjoy cultural performances at sunset.", "Jaisalmer", 3200,
		[]seedSlot{{7, "4:00 PM", 12, 10}, {8, "5:00 PM", 12, 8}}},
	{"Trekking Expedition", "Explore the scenic trails of the Himalayas with expert guides.", "Manali", 6000,
		[]seedSlot{{10, "7:00 AM", 15, 9}, {11, "7:00 AM", 15, 12}}},
	{"River Rafting Adventure", "Battle the rapids with trained professionals for an adrenaline rush.", "Rishikesh", 3500,
		[]seedSlot{{2, "10:00 AM", 8, 6}, {2, "3:00 PM", 8, 5}}},
	{"Paragliding Experience", "Soar over the hills and enjoy a bird's-eye view of the valley.", "Bir Billing", 4000,
		[]seedSlot{{12, "11:00 AM", 5, 3}, {12, "2:00 PM", 5, 5}}},
	{"Kayaking in Backwaters", "Paddle through calm waters surrounded by lush greenery.", "Alleppey", 2800,
		[]seedSlot{{3, "9:00 AM", 6, 2}, {3, "4:00 PM", 6, 6}}},
	{"Bungee Jumping", "Take a leap of faith from a 150-ft tower.", "Rishikesh", 4200,
		[]seedSlot{{9, "11:00 AM", 5, 4}, {9, "1:00 PM", 5, 5}}},
	{"Mountain Biking Trail", "Conquer rugged mountain trails with professional guidance.", "Leh-Ladakh", 6500,
		[]seedSlot{{15, "8:00 AM", 10, 8}, {16, "8:00 AM", 10, 10}}},
}

// DemoExperiences builds the demo catalog with slot dates counted in days
// from base, so a fresh seed always has bookable future slots.
func DemoExperiences(base time.Time) []*model.Experience {
	experiences := make([]*model.Experience, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		e := &model.Experience{
			Title:       d.title,
			Description: d.description,
			Image:       seedImage,
			Location:    d.location,
			Price:       d.price,
		}
		for _, s := range d.slots {
			e.Slots = append(e.Slots, model.Slot{
				Date:     base.AddDate(0, 0, s.dayOffset).Format(slottime.DateLayout),
				Time:     s.time,
				Capacity: s.capacity,
				Booked:   s.booked,
			})
		}
		experiences = append(experiences, e)
	}
	return experiences
}

// Seed inserts experiences unless the catalog already has entries. It returns
// the number of inserted documents.
func Seed(ctx context.Context, repo ExperienceSeeder, checker ExperienceChecker, experiences []*model.Experience) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	if count > 0 {
		fmt.Printf("ℹ️ Catalog already has %d experiences, skipping seed\n", count)
		return 0, nil
	}

	for _, e := range experiences {
		sanitizer.SanitizeExperience(e)
		if err := checker.Validate(e); err != nil {
			return 0, fmt.Errorf("invalid seed experience %q: %w", e.Title, err)
		}
	}

	ids, err := repo.InsertMany(ctx, experiences)
	if err != nil {
		return 0, fmt.Errorf("failed to insert experiences: %w", err)
	}

	fmt.Printf("🌱 Seeded %d experiences\n", len(ids))
	return len(ids), nil
}
