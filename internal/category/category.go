package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
)

type Category struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Name      string      `json:"name"`
	Type      txtype.Type `json:"type"`
	Color     string      `json:"color"`
	Icon      *string     `json:"icon"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewCategory(userID int64, dto CreateCategoryDTO) *Category {
	return &Category{
		UserID: userID,
		Name:   dto.Name,
		Type:   txtype.Type(dto.Type),
		Color:  dto.Color,
		Icon:   normalizeIcon(dto.Icon),
	}
}

// ApplyUpdate merges a partial update. Empty strings keep the current value;
// icon is replaced whenever the key was sent, including an explicit null.
func (c *Category) ApplyUpdate(dto UpdateCategoryDTO) {
	if dto.Name != "" {
		c.Name = dto.Name
	}
	if dto.Type != "" {
		c.Type = txtype.Type(dto.Type)
	}
	if dto.Color != "" {
		c.Color = dto.Color
	}
	if dto.Icon.Set {
		c.Icon = normalizeIcon(dto.Icon.Ptr())
	}
}

func normalizeIcon(icon *string) *string {
	if icon == nil || *icon == "" {
		return nil
	}
	v := *icon
	return &v
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      string(c.Type),
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      txtype.Type(c.Type),
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
	}
}
