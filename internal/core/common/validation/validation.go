package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// MaxAmount is the largest value a decimal(10,2) column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{FieldName: name, Value: value}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.ValidationError {
	return &errors.ValidationError{Field: fv.FieldName, Message: message, Code: string(code)}
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return nil
		}
		if utf8.RuneCountInString(s) > max {
			return fv.fail(fmt.Sprintf("%s deve ter no máximo %d caracteres", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// TxType accepts only "income" or "expense".
func (fv *FieldValidator) TxType() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		var t txtype.Type
		switch v := value.(type) {
		case string:
			t = txtype.Type(v)
		case txtype.Type:
			t = v
		}
		if !t.Valid() {
			return fv.fail(`Tipo deve ser "income" ou "expense"`, errors.ErrCodeInvalidType)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) HexColor() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if s, ok := value.(string); ok && !hexColor.MatchString(s) {
			return fv.fail("Cor deve estar no formato #RRGGBB", errors.ErrCodeInvalidColor)
		}
		return nil
	})
	return fv
}

// Amount requires a strictly positive value with at most two fractional digits
// that fits a decimal(10,2) column.
func (fv *FieldValidator) Amount() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return nil
		}
		switch {
		case !d.IsPositive():
			return fv.fail("Valor deve ser maior que zero", errors.ErrCodeInvalidAmount)
		case !d.Equal(d.Truncate(2)):
			return fv.fail("Valor deve ter no máximo duas casas decimais", errors.ErrCodeInvalidAmount)
		case d.GreaterThan(MaxAmount):
			return fv.fail("Valor excede o máximo permitido", errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator ValidatorFunc) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every validator and reports all failures at once. Validators for a
// field stop at that field's first failure.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				validationErrors = append(validationErrors, *err)
				break
			}
		}
	}

	if len(validationErrors) == 0 {
		return nil
	}

	return &errors.AppError{
		Type:       errors.ErrorTypeValidation,
		Code:       errors.ErrCodeValidationFailed,
		Message:    joinMessages(validationErrors),
		StatusCode: 400,
		Details:    errors.ValidationErrors{Errors: validationErrors},
	}
}

func joinMessages(errs []errors.ValidationError) string {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return strings.Join(messages, "; ")
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar
// date at UTC midnight.
func ParseDate(field, raw string) (time.Time, *errors.AppError) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return TruncateToDate(t), nil
	}
	return time.Time{}, errors.NewValidationFieldError(field,
		fmt.Sprintf("%s deve estar no formato AAAA-MM-DD", field), errors.ErrCodeInvalidDate)
}

// TruncateToDate drops the time of day, keeping the calendar date as written.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
