package validator

import (
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"bookit/pkg/slottime"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ExperienceValidator checks catalog entries before they are written.
type ExperienceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewExperienceValidator(log *logger.Logger) *ExperienceValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("slot_time", validateSlotTime); err != nil {
		log.Fatal("Failed to register 'slot_time' validator",
			"error", err,
		)
	}
	v.RegisterStructValidation(uniqueSlotsValidation, model.Experience{})

	log.Info("Experience validator initialized successfully")

	return &ExperienceValidator{
		validate: v,
		logger:   log,
	}
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, _, err := slottime.To24Hour(fl.Field().String())
	return err == nil
}

// uniqueSlotsValidation rejects two slots with the same date and time.
func uniqueSlotsValidation(sl validator.StructLevel) {
	experience := sl.Current().Interface().(model.Experience)

	seen := make(map[model.SlotKey]bool, len(experience.Slots))
	for _, slot := range experience.Slots {
		key := slot.Key()
		if seen[key] {
			sl.ReportError(experience.Slots, "Slots", "slots", "unique_slot", key.Date+" "+key.Time)
			return
		}
		seen[key] = true
	}
}

func (v *ExperienceValidator) Validate(experience *model.Experience) error {
	if err := v.validate.Struct(experience); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ExperienceValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := err.Namespace()
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in %s format", err.Field(), err.Param())
		case "slot_time":
			message = fmt.Sprintf("%s must look like H:MM AM or H:MM PM", err.Field())
		case "ltefield":
			message = fmt.Sprintf("%s cannot exceed %s", err.Field(), err.Param())
		case "unique_slot":
			message = fmt.Sprintf("duplicate slot %s", err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}
