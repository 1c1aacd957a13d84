package category

import (
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/optional"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
)

const (
	maxNameLength = 255
	maxIconLength = 50
)

type CreateCategoryDTO struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Color string  `json:"color"`
	Icon  *string `json:"icon"`
}

func (dto CreateCategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" || dto.Type == "" || dto.Color == "" {
		return errors.NewValidationError("Campos obrigatórios: name, type, color", errors.ErrCodeMissingFields)
	}

	v := validation.NewValidator()
	v.Field("name", dto.Name).MaxLength(maxNameLength)
	v.Field("type", dto.Type).TxType()
	v.Field("color", dto.Color).HexColor()
	v.Field("icon", dto.Icon).MaxLength(maxIconLength)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateCategoryDTO is a partial update; see Category.ApplyUpdate.
type UpdateCategoryDTO struct {
	Name  string                 `json:"name"`
	Type  string                 `json:"type"`
	Color string                 `json:"color"`
	Icon  optional.Value[string] `json:"icon"`
}

func (dto UpdateCategoryDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != "" {
		v.Field("name", dto.Name).MaxLength(maxNameLength)
	}
	if dto.Type != "" {
		v.Field("type", dto.Type).TxType()
	}
	if dto.Color != "" {
		v.Field("color", dto.Color).HexColor()
	}
	if dto.Icon.Set && !dto.Icon.Null {
		v.Field("icon", dto.Icon.V).MaxLength(maxIconLength)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
