package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"hotel-frontdesk/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their JSON names so messages line up with request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return isDigits(fl.Field().String())
	})
	v.RegisterStructValidation(guestIDRule, models.Guest{})
	return v
}

// guestIDRule: an Aadhar number is exactly 12 digits. Blank numbers are left
// to the required tag.
func guestIDRule(sl validator.StructLevel) {
	g := sl.Current().Interface().(models.Guest)
	if g.IDType != models.IDTypeAadhar || g.IDNumber == "" {
		return
	}
	if len(g.IDNumber) != 12 || !isDigits(g.IDNumber) {
		sl.ReportError(g.IDNumber, "idNumber", "IDNumber", "aadhar", "")
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var fieldMessages = map[string]string{
	"name.required":       "Name is required",
	"phone.required":      "Phone number is required",
	"phone.digits":        "Phone must be 10 digits",
	"phone.len":           "Phone must be 10 digits",
	"idNumber.required":   "ID number is required",
	"idNumber.aadhar":     "Aadhar Card must be 12 digits",
	"gender.oneof":        "Gender must be Male, Female or Other",
	"idType.oneof":        "Unknown ID type",
	"roomNumber.required": "Room number is required",
	"adults.gte":          "At least one adult is required",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// validateStruct runs the tag rules on v. Returns nil when v is valid.
func validateStruct(v any) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	ve := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.add("request", err.Error())
		return ve
	}
	for _, fe := range fieldErrs {
		ve.add(fe.Field(), messageFor(fe))
	}
	return ve
}

// ParseDate accepts a calendar date (2006-01-02, read as UTC midnight) or an
// RFC 3339 timestamp. Blank input yields the zero time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}
