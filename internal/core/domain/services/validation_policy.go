package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// MaxWeightGrams caps the accepted weight so that pricing stays in int range.
const MaxWeightGrams = 1_000_000_000

// ShipmentInput is the raw, user supplied shape of a shipment creation request.
// Weight is kept as text because form fields and CSV cells arrive as text.
type ShipmentInput struct {
	Receiver        string `json:"receiver"        validate:"trimmed_required,plausible_email"`
	Description     string `json:"description"`
	Weight          string `json:"weight"          validate:"trimmed_required,positive_number"`
	PackageSize     string `json:"packageSize"     validate:"trimmed_required"`
	DeliveryAddress string `json:"deliveryAddress" validate:"trimmed_required"`
}

// ContactInput is the raw shape of an address book entry.
type ContactInput struct {
	Name    string `json:"name"    validate:"trimmed_required"`
	Email   string `json:"email"   validate:"trimmed_required,plausible_email"`
	Address string `json:"address" validate:"trimmed_required"`
}

// ValidationPolicy checks user input before any mutation happens.
//
// Every check runs; the failures come back together as one *errs.ValidationError
// whose violations name the offending fields. Bad input never panics.
type ValidationPolicy struct {
	validate *validator.Validate
}

func NewValidationPolicy() ValidationPolicy {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("trimmed_required", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("plausible_email", func(fl validator.FieldLevel) bool {
		_, err := kernel.NewEmail(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("positive_number", func(fl validator.FieldLevel) bool {
		_, err := ParseWeightGrams(fl.Field().String())
		return err == nil
	})
	return ValidationPolicy{validate: v}
}

// ValidateShipment returns the parcel described by in, or a ValidationError
// listing every failed field.
func (p ValidationPolicy) ValidateShipment(in ShipmentInput) (shipment.Parcel, error) {
	if err := p.check(in); err != nil {
		return shipment.Parcel{}, err
	}

	receiver, emailErr := kernel.NewEmail(in.Receiver)
	weight, weightErr := ParseWeightGrams(in.Weight)
	if err := errs.NewValidationError(emailErr, weightErr); err != nil {
		return shipment.Parcel{}, err
	}

	parcel, err := shipment.NewParcel(receiver, in.Description, weight, in.PackageSize, in.DeliveryAddress)
	if err != nil {
		return shipment.Parcel{}, errs.NewValidationError(err)
	}
	return parcel, nil
}

// ValidateContact checks an address book entry.
func (p ValidationPolicy) ValidateContact(in ContactInput) (kernel.Email, error) {
	if err := p.check(in); err != nil {
		return kernel.Email{}, err
	}
	email, err := kernel.NewEmail(in.Email)
	if err != nil {
		return kernel.Email{}, errs.NewValidationError(err)
	}
	return email, nil
}

// ValidateWeightGrams checks a pricing input.
func (p ValidationPolicy) ValidateWeightGrams(weightGrams int) error {
	if weightGrams <= 0 || weightGrams > MaxWeightGrams {
		return errs.NewValidationError(
			errs.NewValueIsOutOfRangeError("weight", weightGrams, 1, MaxWeightGrams))
	}
	return nil
}

func (p ValidationPolicy) check(in any) error {
	err := p.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("input", err))
	}

	violations := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, toViolation(fe))
	}
	return errs.NewValidationError(violations...)
}

func toViolation(fe validator.FieldError) error {
	switch fe.Tag() {
	case "trimmed_required":
		return errs.NewValueIsRequiredError(fe.Field())
	case "plausible_email":
		return errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("%q is not a valid email", fe.Value()))
	case "positive_number":
		return errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("%q is not a number greater than 0", fe.Value()))
	default:
		return errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("failed %s check", fe.Tag()))
	}
}

// ParseWeightGrams parses a weight in grams. Fractional grams are truncated,
// so "99.5" weighs 99; a positive weight under one gram counts as 1.
func ParseWeightGrams(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.NewValueIsRequiredError("weight")
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}
	if math.IsNaN(w) || w <= 0 || w > MaxWeightGrams {
		return 0, errs.NewValueIsOutOfRangeError("weight", raw, 1, MaxWeightGrams)
	}
	return max(1, int(math.Floor(w))), nil
}
