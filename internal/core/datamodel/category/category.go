package category

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Type      string    `gorm:"column:type;size:20;not null"`
	Color     string    `gorm:"column:color;size:7;not null"`
	Icon      *string   `gorm:"column:icon;size:50"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}
