package sanitizer

import (
	"bookit/pkg/model"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func SanitizeName(input string) string {
	return TrimAndNormalize(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToLower,
	}
	return p.Apply(input)
}

func SanitizeOrderID(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		strings.ToUpper,
	}
	return p.Apply(input)
}

// SanitizePromoCode trims surrounding space. Case is kept: "save10" is not "SAVE10".
func SanitizePromoCode(input string) string {
	return strings.TrimSpace(input)
}

// SanitizeBookingRequest normalizes the customer-supplied fields in place.
// Slot fields are only trimmed so the engine sees the caller's format.
func SanitizeBookingRequest(req *model.BookingRequest) {
	req.Name = SanitizeName(req.Name)
	req.Email = SanitizeEmail(req.Email)
	req.OrderID = SanitizeOrderID(req.OrderID)
	req.ExperienceID = strings.TrimSpace(req.ExperienceID)
	req.PromoCode = SanitizePromoCode(req.PromoCode)
	req.Slot.Date = strings.TrimSpace(req.Slot.Date)
	req.Slot.Time = TrimAndNormalize(req.Slot.Time)
}

func SanitizeExperience(exp *model.Experience) {
	exp.Title = TrimAndNormalize(exp.Title)
	exp.Description = strings.TrimSpace(exp.Description)
	exp.Location = TrimAndNormalize(exp.Location)
	exp.Image = NormalizeURL(exp.Image)
	for i := range exp.Slots {
		exp.Slots[i].Date = strings.TrimSpace(exp.Slots[i].Date)
		exp.Slots[i].Time = TrimAndNormalize(exp.Slots[i].Time)
	}
}
