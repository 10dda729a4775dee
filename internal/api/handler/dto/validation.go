package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"library-store/internal/domain/customer"
	"library-store/internal/domain/membership"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of calendar dates such as birthdates.
const DateLayout = "2006-01-02"

const minimumMemberAge = 18

const (
	tagBirthdateRequired = "birthdate_required"
	tagMinimumAge        = "minimum_age"
)

var validate = newValidator()

// now is swapped in tests to pin the age check to a fixed day.
var now = time.Now

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(customerFormRules, CustomerFormRequest{})
	return v
}

// customerFormRules enforces the age limit on paid membership tiers.
func customerFormRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(CustomerFormRequest)
	if !membership.RequiresAdult(req.MembershipTypeID) {
		return
	}
	if req.Birthdate == nil || strings.TrimSpace(*req.Birthdate) == "" {
		sl.ReportError(req.Birthdate, "birthdate", "Birthdate", tagBirthdateRequired, "")
		return
	}
	birthdate, err := time.Parse(DateLayout, *req.Birthdate)
	if err != nil {
		// the datetime tag already reported it
		return
	}
	if age, _ := customer.AgeOn(&birthdate, now()); age < minimumMemberAge {
		sl.ReportError(req.Birthdate, "birthdate", "Birthdate", tagMinimumAge, fmt.Sprint(minimumMemberAge))
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every field that failed validation.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(validationErrs))
	for _, e := range validationErrs {
		out = append(out, FieldError{Field: e.Field(), Message: friendlyMessage(e)})
	}
	return out
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case tagBirthdateRequired:
		return "Birthdate is required."
	case tagMinimumAge:
		return "Customer should be at least 18 years old to go on a membership."
	default:
		return "is invalid"
	}
}
