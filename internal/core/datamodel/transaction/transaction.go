package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"column:user_id;not null;index"`
	CategoryID  *int64          `gorm:"column:category_id;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	Description *string         `gorm:"column:description"`
	Type        string          `gorm:"column:type;size:20;not null"`
	Date        time.Time       `gorm:"column:date;type:date;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionWithCategory is a transaction row joined with its category's display fields.
type TransactionWithCategory struct {
	Transaction
	CategoryName  *string `gorm:"column:category_name"`
	CategoryColor *string `gorm:"column:category_color"`
	CategoryIcon  *string `gorm:"column:category_icon"`
}
