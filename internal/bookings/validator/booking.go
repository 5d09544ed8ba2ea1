package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sofcar/pkg/config"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"

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

type BookingValidator struct {
	validate *validator.Validate
	cfg      *config.Config
	logger   *logger.Logger

	// Now is injectable for tests of the date policy.
	Now func() time.Time
}

func NewBookingValidator(cfg *config.Config, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		cfg:      cfg,
		logger:   log,
		Now:      time.Now,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.ValidateDates(booking.StartDate, booking.EndDate)
}

// ValidateDates enforces the rental policy: the start date must be strictly
// after today, the duration must fall inside the configured day window, and
// the start date may not sit beyond the advance-booking horizon.
func (v *BookingValidator) ValidateDates(start, end time.Time) error {
	err := v.validateDates(start, end)
	if err != nil {
		v.logger.Debug("Booking dates rejected",
			"start_date", start,
			"end_date", end,
			"error", err,
		)
	}
	return err
}

func (v *BookingValidator) validateDates(start, end time.Time) error {
	today := dateOnly(v.Now())
	startDate := dateOnly(start)
	endDate := dateOnly(end)

	if !startDate.After(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "StartDate",
				Message: "start_date must be after today",
			},
		}
	}

	days := int(endDate.Sub(startDate).Hours() / 24)
	if days < v.cfg.MinRentalDays {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: fmt.Sprintf("rental must be at least %d days", v.cfg.MinRentalDays),
			},
		}
	}
	if days > v.cfg.MaxRentalDays {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: fmt.Sprintf("rental must be at most %d days", v.cfg.MaxRentalDays),
			},
		}
	}

	horizon := today.AddDate(0, 0, v.cfg.MaxAdvanceBookingDays)
	if startDate.After(horizon) {
		return ValidationErrors{
			ValidationError{
				Field:   "StartDate",
				Message: fmt.Sprintf("start_date cannot be more than %d days in advance", v.cfg.MaxAdvanceBookingDays),
			},
		}
	}

	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.IsEmpty() {
		return ValidationErrors{
			ValidationError{
				Field:   "Update",
				Message: "at least one of status, deposit_status or notes must be provided",
			},
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
