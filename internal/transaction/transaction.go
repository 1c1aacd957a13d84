package transaction

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	transactionDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense. The category display fields are
// filled on reads and stay nil when the transaction has no category.
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	CategoryID    *int64          `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   *string         `json:"description"`
	Type          txtype.Type     `json:"type"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	CategoryName  *string         `json:"category_name"`
	CategoryColor *string         `json:"category_color"`
	CategoryIcon  *string         `json:"category_icon"`
}

// MarshalJSON renders Date as a calendar date.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(t),
		Date:  t.Date.Format(validation.DateLayout),
	})
}

// Filter narrows a listing. Every field is optional and applied independently.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       txtype.Type
	CategoryID *int64
}

func NewTransaction(userID int64, dto CreateTransactionDTO, date time.Time) *Transaction {
	return &Transaction{
		UserID:      userID,
		CategoryID:  normalizeCategoryID(dto.CategoryID),
		Amount:      dto.Amount.Decimal,
		Description: normalizeDescription(dto.Description),
		Type:        txtype.Type(dto.Type),
		Date:        date,
	}
}

// ApplyUpdate merges a partial update. Absent fields keep their value;
// description and category_id may be cleared with an explicit null.
func (t *Transaction) ApplyUpdate(dto UpdateTransactionDTO, date *time.Time) {
	if dto.Amount.Valid {
		t.Amount = dto.Amount.Decimal
	}
	if dto.Description.Set {
		t.Description = normalizeDescription(dto.Description.Ptr())
	}
	if dto.Type != "" {
		t.Type = txtype.Type(dto.Type)
	}
	if date != nil {
		t.Date = *date
	}
	if dto.CategoryID.Set {
		t.CategoryID = normalizeCategoryID(dto.CategoryID.Ptr())
	}
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	v := *d
	return &v
}

func normalizeCategoryID(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func ToDataModel(t *Transaction) *transactionDatamodel.Transaction {
	return &transactionDatamodel.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}

func FromDataModel(row *transactionDatamodel.TransactionWithCategory) *Transaction {
	return &Transaction{
		ID:            row.ID,
		UserID:        row.UserID,
		CategoryID:    row.CategoryID,
		Amount:        row.Amount,
		Description:   row.Description,
		Type:          txtype.Type(row.Type),
		Date:          validation.TruncateToDate(row.Date),
		CreatedAt:     row.CreatedAt,
		CategoryName:  row.CategoryName,
		CategoryColor: row.CategoryColor,
		CategoryIcon:  row.CategoryIcon,
	}
}
