package model

import "encoding/json"

type Experience struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Image       string `json:"image" bson:"image" validate:"omitempty,url"`
	Location    string `json:"location" bson:"location" validate:"omitempty,max=200"`
	Price       int64  `json:"price" bson:"price" validate:"min=0"`
	Slots       []Slot `json:"slots" bson:"slots" validate:"dive"`
}

// Slot is a bookable (date, time) unit embedded in an Experience.
// Capacity is fixed at creation; only Booked changes.
type Slot struct {
	Date     string `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" bson:"time" validate:"required,slot_time"`
	Capacity int    `json:"capacity" bson:"capacity" validate:"required,min=1"`
	Booked   int    `json:"booked" bson:"booked" validate:"min=0,ltefield=Capacity"`
}

func (s Slot) Available() bool {
	return s.Booked < s.Capacity
}

func (s Slot) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

func (s Slot) Key() SlotKey {
	return SlotKey{Date: s.Date, Time: s.Time}
}

func (s Slot) MarshalJSON() ([]byte, error) {
	type slot Slot
	return json.Marshal(struct {
		slot
		Available bool `json:"available"`
	}{slot: slot(s), Available: s.Available()})
}

// SlotKey identifies a slot within its experience.
type SlotKey struct {
	Date string `json:"date" bson:"date"`
	Time string `json:"time" bson:"time"`
}

// FindSlots returns every slot of e matching key, in catalog order.
func (e *Experience) FindSlots(key SlotKey) []Slot {
	var matches []Slot
	for _, s := range e.Slots {
		if s.Date == key.Date && s.Time == key.Time {
			matches = append(matches, s)
		}
	}
	return matches
}
