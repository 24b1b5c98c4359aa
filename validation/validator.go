// Package validation checks request payloads and reports one message per
// failing field.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule binds a validator tag and its message to a payload key.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

type Validator struct {
	validate *validator.Validate
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"20060102",
	"2006-01",
	"2006",
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)
	mustRegister(validate, "text", isText)
	mustRegister(validate, "iso8601", isISO8601)
	mustRegister(validate, "finitenumber", isFiniteNumber)
	mustRegister(validate, "maxbytes", isMaxBytes)
	return &Validator{validate: validate}
}

func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct validates s against its validate tags. messages is keyed by JSON
// field name, or by "field.tag" for a message specific to one tag. Fields
// without an entry fall back to the validator's text.
func (v *Validator) Struct(s any, messages map[string]string) ([]FieldError, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		message, ok := messages[fieldErr.Field()+"."+fieldErr.Tag()]
		if !ok {
			message, ok = messages[fieldErr.Field()]
		}
		if !ok {
			message = fieldErr.Error()
		}
		fields = append(fields, FieldError{Field: fieldErr.Field(), Message: message})
	}
	return fields, nil
}

// Fields checks input against rules in order. With partial set, absent or
// null keys are skipped instead of reported.
func (v *Validator) Fields(input map[string]any, rules []Rule, partial bool) []FieldError {
	var fields []FieldError
	for _, rule := range rules {
		value, present := input[rule.Field]
		if !present || value == nil {
			if !partial {
				fields = append(fields, FieldError{Field: rule.Field, Message: rule.Message})
			}
			continue
		}
		if err := v.validate.Var(value, rule.Tag); err != nil {
			fields = append(fields, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}
	return fields
}

// ParseNumber converts a JSON number or numeric string. Values outside the
// finite float64 range are rejected.
func ParseNumber(value any) (float64, bool) {
	var parsed float64
	switch typed := value.(type) {
	case float64:
		parsed = typed
	case string:
		var err error
		parsed, err = strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

// ParseDate accepts ISO-8601 dates and date-times. Values without a zone are
// read as UTC.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isText(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isFiniteNumber(fl validator.FieldLevel) bool {
	_, ok := ParseNumber(fl.Field().Interface())
	return ok
}

// isMaxBytes bounds the encoded length, which is what bcrypt limits.
func isMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil || fl.Field().Kind() != reflect.String {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func isISO8601(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
