package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	errors "github.com/frahmantamala/project-console/internal"
)

const DateLayout = "2006-01-02"

// MaxBudget is the largest budget the API stores (numeric(12,2)).
const MaxBudget = 999999999.99

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

// text returns the string behind value; ok is false for absent optionals.
func text(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

func number(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case *float64:
		if v == nil {
			return 0, false
		}
		return *v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
			}
		case nil:
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequired)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := text(value); ok && utf8.RuneCountInString(strings.TrimSpace(v)) < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := text(value); ok && utf8.RuneCountInString(v) > max {
			return fv.fail(fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Min(min float64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := number(value); ok && v < min {
			return fv.fail(fmt.Sprintf("%s must be at least %s", fv.FieldName, formatNumber(min)), code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Max(max float64, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := number(value); ok && v > max {
			return fv.fail(fmt.Sprintf("%s must not exceed %s", fv.FieldName, formatNumber(max)), code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Positive(code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := number(value); ok && v <= 0 {
			return fv.fail(fmt.Sprintf("%s must be greater than 0", fv.FieldName), code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := text(value); ok && v != "" && !emailPattern.MatchString(v) {
			return fv.fail("please enter a valid email address", errors.ErrCodeInvalidEmail)
		}
		return nil
	})
	return fv
}

// Password requires at least 8 characters with a letter and a digit.
func (fv *FieldValidator) Password() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := text(value)
		if !ok || v == "" {
			return nil
		}
		if utf8.RuneCountInString(v) < 8 {
			return fv.fail("password must be at least 8 characters", errors.ErrCodeWeakPassword)
		}
		var letter, digit bool
		for _, r := range v {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		if !letter || !digit {
			return fv.fail("password must contain both letters and numbers", errors.ErrCodeWeakPassword)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) URL() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := text(value)
		if !ok || v == "" {
			return nil
		}
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fv.fail(fmt.Sprintf("%s must be a valid http or https URL", fv.FieldName), errors.ErrCodeInvalidURL)
		}
		return nil
	})
	return fv
}

// Date accepts YYYY-MM-DD.
func (fv *FieldValidator) Date() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := text(value)
		if !ok || v == "" {
			return nil
		}
		if _, err := time.Parse(DateLayout, v); err != nil {
			return fv.fail(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fv.FieldName), errors.ErrCodeInvalidDate)
		}
		return nil
	})
	return fv
}

// NotBefore fails when the field date is earlier than other. Either side
// missing or malformed is left to the Date validator.
func (fv *FieldValidator) NotBefore(other *string, otherName string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := text(value)
		if !ok || other == nil {
			return nil
		}
		end, err1 := time.Parse(DateLayout, v)
		start, err2 := time.Parse(DateLayout, *other)
		if err1 != nil || err2 != nil {
			return nil
		}
		if end.Before(start) {
			return fv.fail(fmt.Sprintf("%s must not be before %s", fv.FieldName, otherName), errors.ErrCodeInvalidDateRange)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := text(value)
		if !ok || v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of %s", fv.FieldName, strings.Join(allowed, ", ")), errors.ErrCodeInvalidEnum)
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every rule and reports all field failures at once.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details := appErr.FieldErrors(); len(details) > 0 {
				validationErrors = append(validationErrors, details...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

func ValidateEmail(email string) *errors.AppError {
	validator := NewValidator()
	validator.Field("email", email).Required().Email()
	return validator.Validate()
}

func ValidatePassword(password string) *errors.AppError {
	validator := NewValidator()
	validator.Field("password", password).Required().Password()
	return validator.Validate()
}
