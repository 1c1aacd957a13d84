package transaction

import (
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/optional"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 1000

type CreateTransactionDTO struct {
	Amount      decimal.NullDecimal `json:"amount"`
	Description *string             `json:"description"`
	Type        string              `json:"type"`
	Date        string              `json:"date"`
	CategoryID  *int64              `json:"category_id"`
}

// Validate checks the payload and returns the parsed calendar date.
func (dto CreateTransactionDTO) Validate() (time.Time, error) {
	if !dto.Amount.Valid || dto.Type == "" || dto.Date == "" {
		return time.Time{}, errors.NewValidationError("Campos obrigatórios: amount, type, date", errors.ErrCodeMissingFields)
	}

	date, dateErr := validation.ParseDate("date", dto.Date)

	v := validation.NewValidator()
	v.Field("amount", dto.Amount.Decimal).Amount()
	v.Field("type", dto.Type).TxType()
	v.Field("description", dto.Description).MaxLength(maxDescriptionLength)
	v.Field("date", dto.Date).Custom(dateValidator(dateErr))
	if appErr := v.Validate(); appErr != nil {
		return time.Time{}, appErr
	}
	return date, nil
}

// UpdateTransactionDTO is a partial update; see Transaction.ApplyUpdate.
type UpdateTransactionDTO struct {
	Amount      decimal.NullDecimal    `json:"amount"`
	Description optional.Value[string] `json:"description"`
	Type        string                 `json:"type"`
	Date        string                 `json:"date"`
	CategoryID  optional.Value[int64]  `json:"category_id"`
}

// Validate checks the fields that were sent and returns the parsed date when
// one was supplied.
func (dto UpdateTransactionDTO) Validate() (*time.Time, error) {
	var (
		date    *time.Time
		dateErr *errors.AppError
	)
	if dto.Date != "" {
		parsed, err := validation.ParseDate("date", dto.Date)
		date, dateErr = &parsed, err
	}

	v := validation.NewValidator()
	if dto.Amount.Valid {
		v.Field("amount", dto.Amount.Decimal).Amount()
	}
	if dto.Type != "" {
		v.Field("type", dto.Type).TxType()
	}
	if dto.Description.Set && !dto.Description.Null {
		v.Field("description", dto.Description.V).MaxLength(maxDescriptionLength)
	}
	if dto.Date != "" {
		v.Field("date", dto.Date).Custom(dateValidator(dateErr))
	}
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}
	return date, nil
}

func dateValidator(parseErr *errors.AppError) validation.ValidatorFunc {
	return func(interface{}) *errors.ValidationError {
		if parseErr == nil {
			return nil
		}
		if details, ok := parseErr.Details.(errors.ValidationErrors); ok && len(details.Errors) > 0 {
			return &details.Errors[0]
		}
		return &errors.ValidationError{Field: "date", Message: parseErr.Message, Code: string(errors.ErrCodeInvalidDate)}
	}
}
