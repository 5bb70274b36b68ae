package validator

import (
	"errors"
	"fmt"
	"strings"

	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/pkg/logger"
	"innkeeper/pkg/sanitizer"
	"innkeeper/pkg/model"

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
	validate          *validator.Validate
	logger            *logger.Logger
	maxStayDays       int
	adultAgeThreshold int
}

func NewBookingValidator(log *logger.Logger, maxStayDays, adultAgeThreshold int) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully",
		"max_stay_days", maxStayDays,
		"adult_age_threshold", adultAgeThreshold,
	)

	return &BookingValidator{
		validate:          v,
		logger:            log,
		maxStayDays:       maxStayDays,
		adultAgeThreshold: adultAgeThreshold,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !booking.StayRange.Valid() {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: bookingserrors.ErrInvalidStayRange.Error(),
			},
		}
	}

	if booking.StayRange.LongerThan(v.maxStayDays) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOut",
				Message: fmt.Sprintf("stay exceeds the maximum of %d days", v.maxStayDays),
			},
		}
	}

	return nil
}

// ValidateOccupancy enforces guest rules that only apply once a booking
// leaves its initial state: every room needs at least one adult guest,
// no guest may be both unnamed and unlinked, and the same name may not
// appear twice in a room.
func (v *BookingValidator) ValidateOccupancy(booking *model.Booking) error {
	var validationErrors ValidationErrors

	for i, line := range booking.Lines {
		if len(line.Guests) == 0 {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fmt.Sprintf("Lines[%d].Guests", i),
				Message: fmt.Sprintf("room %s needs at least one guest", line.RoomID),
			})
			continue
		}

		hasAdult := false
		seenNames := make(map[string]struct{}, len(line.Guests))
		for j, guest := range line.Guests {
			if guest.Name == "" && guest.PartnerID == "" {
				validationErrors = append(validationErrors, ValidationError{
					Field:   fmt.Sprintf("Lines[%d].Guests[%d]", i, j),
					Message: "guest needs a name or a partner reference",
				})
			}
			if key := sanitizer.NormalizeNameForComparison(guest.Name); key != "" {
				if _, dup := seenNames[key]; dup {
					validationErrors = append(validationErrors, ValidationError{
						Field:   fmt.Sprintf("Lines[%d].Guests[%d]", i, j),
						Message: fmt.Sprintf("guest %q is listed more than once", guest.Name),
					})
				}
				seenNames[key] = struct{}{}
			}
			if guest.Age >= v.adultAgeThreshold {
				hasAdult = true
			}
		}

		if !hasAdult {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fmt.Sprintf("Lines[%d].Guests", i),
				Message: fmt.Sprintf("room %s needs at least one guest aged %d or older", line.RoomID, v.adultAgeThreshold),
			})
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_without":
			message = fmt.Sprintf("%s is required when %s is absent", err.Field(), err.Param())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
